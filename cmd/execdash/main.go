package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"execdash/internal/app"
	"execdash/internal/config"
	"execdash/internal/dashboard"
	"execdash/internal/domain"
	"execdash/internal/insight"
	"execdash/internal/logging"
	"execdash/internal/modal"
	"execdash/internal/render"
	"execdash/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "execdash",
	Short: "Executive program dashboard",
	Long: `execdash renders the executive dashboard of a migration program from the
snapshot served by the upstream data endpoint (GET {upstream}/api/dashboard).

- serve: HTML dashboard plus JSON API, refreshed on an interval.
- render: one fetch, writes the page to a file.
- risks, milestones, tasks: one fetch, printed as tables or JSON.
Settings come from execdash.yml, EXECDASH_* env vars and flags, in increasing precedence.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("EXECDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default ./"+config.FileName+" when present)")
	rootCmd.PersistentFlags().StringP("upstream", "u", "", "upstream base URL, overrides upstream.base_url")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("upstream", rootCmd.PersistentFlags().Lookup("upstream"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func registerCommands() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(risksCmd())
	rootCmd.AddCommand(milestonesCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(configCmd())
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and its JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDashboard(func(cfg *config.Config, log *zap.Logger, d *dashboard.Dashboard) error {
				if addr == "" {
					addr = cfg.Server.Addr
				}
				if addr == "" {
					addr = ":8080"
				}
				loc, err := cfg.Location()
				if err != nil {
					return err
				}
				interval := cfg.RefreshInterval()
				if interval <= 0 {
					interval = dashboard.DefaultInterval
				}
				handler, err := server.New(server.Config{
					Dashboard:   d,
					BasePath:    cfg.Server.APIBasePath,
					Log:         log,
					Location:    loc,
					PageRefresh: interval,
				})
				if err != nil {
					return err
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
				g, ctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					d.Run(ctx, interval)
					return nil
				})
				g.Go(func() error {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				g.Go(func() error {
					<-ctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return srv.Shutdown(shutdownCtx)
				})
				basePath := cfg.Server.APIBasePath
				if basePath == "" {
					basePath = "/api/v0"
				}
				fmt.Printf("Serving dashboard on http://%s/ (API at %s, Swagger UI at %s/docs)\n", addr, basePath, basePath)
				return g.Wait()
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr from config)")
	return cmd
}

func renderCmd() *cobra.Command {
	var out, view, sortCol, dir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch once and write the dashboard page",
		Long:  "Writes the page for the current snapshot, or the error page when the fetch fails. --view opens the task table on that view (all, status:done, phase:0, member:<name>, unassigned, zero-progress, overview, risk:<n>).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDashboard(func(cfg *config.Config, log *zap.Logger, d *dashboard.Dashboard) error {
				loc, err := cfg.Location()
				if err != nil {
					return err
				}
				loadErr := d.Load(cmd.Context(), false)
				v := d.View()
				data := render.PageData{
					Snapshot:   v.Snapshot,
					Error:      v.Error,
					Location:   loc,
					Milestones: d.Milestones,
				}
				if view != "" && v.Snapshot != nil {
					ref, err := insight.ParseView(view)
					if err != nil {
						return err
					}
					m, err := modal.ForView(v.Snapshot, ref, sortCol, dir)
					if err != nil {
						return err
					}
					data.Modal, data.View = m, ref
				}
				var buf bytes.Buffer
				if err := render.Page(&buf, data); err != nil {
					return err
				}
				if err := writeOutput(out, buf.Bytes()); err != nil {
					return err
				}
				return loadErr
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dashboard.html", "output file, - for stdout")
	cmd.Flags().StringVar(&view, "view", "", "open the task table on this view")
	cmd.Flags().StringVar(&sortCol, "sort", "", "sort column for --view")
	cmd.Flags().StringVar(&dir, "dir", "", "asc or desc")
	return cmd
}

func risksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "risks",
		Short: "List risks and attention items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshot(cmd.Context(), func(s *domain.Snapshot, d *dashboard.Dashboard) error {
				risks := insight.ComputeRisks(s)
				if viper.GetBool("json") {
					return printJSON(risks)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"#", "Level", "Title", "Detail", "View"})
				for i, r := range risks {
					tw.AppendRow(table.Row{i, strings.ToUpper(string(r.Level)), r.Title, r.Detail, insight.RiskTasks(i).Ref()})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func milestonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "milestones",
		Short: "List key milestones, one per phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshot(cmd.Context(), func(s *domain.Snapshot, d *dashboard.Dashboard) error {
				items := insight.ComputeMilestones(s, d.Milestones)
				if viper.GetBool("json") {
					return printJSON(items)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Phase", "Milestone", "Done"})
				for _, m := range items {
					done := ""
					if m.Done {
						done = "yes"
					}
					tw.AppendRow(table.Row{m.Phase, m.Label, done})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func tasksCmd() *cobra.Command {
	var view, sortCol string
	var desc bool
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the tasks of a view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if desc && sortCol == "" {
				return fmt.Errorf("--desc requires --sort")
			}
			ref, err := insight.ParseView(view)
			if err != nil {
				return err
			}
			dir := ""
			if desc {
				dir = "desc"
			}
			return withSnapshot(cmd.Context(), func(s *domain.Snapshot, d *dashboard.Dashboard) error {
				m, err := modal.ForView(s, ref, sortCol, dir)
				if err != nil {
					return err
				}
				rows := m.Rows()
				if viper.GetBool("json") {
					if rows == nil {
						rows = []domain.Task{}
					}
					return printJSON(rows)
				}
				fmt.Printf("%s (%s)\n", m.Title(), m.CountLabel())
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				header := table.Row{}
				for _, c := range modal.Columns {
					header = append(header, c.Label())
				}
				tw.AppendHeader(header)
				for _, t := range rows {
					tw.AppendRow(table.Row{t.Key, t.Summary, t.Status, t.Assignee, t.Priority, modal.FormatUpdated(t.Updated)})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&view, "view", "all", "view reference")
	cmd.Flags().StringVar(&sortCol, "sort", "", "sort column (key, summary, status, assignee, priority, updated)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Generate or check execdash.yml",
	}
	cfg.AddCommand(configInitCmd())
	cfg.AddCommand(configValidateCmd())
	return cfg
}

func configInitCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print the default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := viper.GetString("upstream")
			if base == "" {
				base = app.DefaultUpstream
			}
			content := config.GenerateDefault(base)
			if out == "" {
				fmt.Print(content)
				return nil
			}
			if _, err := os.Stat(out); err == nil {
				return fmt.Errorf("%s already exists", out)
			}
			return os.WriteFile(out, []byte(content), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the resolved config",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.ResolveConfig(viper.GetString("config"), viper.GetString("upstream"))
			if viper.GetBool("json") {
				return printJSON(map[string]any{"ok": err == nil, "error": fmt.Sprint(err)})
			}
			if err != nil {
				return err
			}
			fmt.Println("config OK")
			return nil
		},
	}
}

func withDashboard(fn func(*config.Config, *zap.Logger, *dashboard.Dashboard) error) error {
	cfg, err := app.ResolveConfig(viper.GetString("config"), viper.GetString("upstream"))
	if err != nil {
		return err
	}
	log, err := logging.New(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	defer log.Sync()
	return fn(cfg, log, app.NewDashboard(cfg, log))
}

// withSnapshot loads once and hands the snapshot over; a failed load is the
// command's error.
func withSnapshot(ctx context.Context, fn func(*domain.Snapshot, *dashboard.Dashboard) error) error {
	return withDashboard(func(cfg *config.Config, log *zap.Logger, d *dashboard.Dashboard) error {
		if err := d.Load(ctx, false); err != nil {
			return err
		}
		s, err := d.Current()
		if err != nil {
			return err
		}
		return fn(s, d)
	})
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := io.Copy(os.Stdout, bytes.NewReader(data))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
