package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"execdash/internal/client"
	"execdash/internal/dashboard"
	"execdash/internal/insight"
	"execdash/internal/modal"
)

// Config for the HTTP handler.
type Config struct {
	Dashboard *dashboard.Dashboard
	BasePath  string
	Log       *zap.Logger
	// Location is used for the "Data as of" line. Nil means local time.
	Location *time.Location
	// PageRefresh makes served pages reload themselves. Zero disables it.
	PageRefresh time.Duration
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"not_ready"`
	Message string         `json:"message" example:"dashboard not loaded yet"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler serving the dashboard page and its JSON API.
func New(cfg Config) (http.Handler, error) {
	if cfg.Dashboard == nil {
		return nil, errors.New("server: dashboard is required")
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(logsMiddleware(cfg.Log))

	p := &pages{
		dash:        cfg.Dashboard,
		log:         cfg.Log,
		loc:         cfg.Location,
		refreshSecs: int(cfg.PageRefresh / time.Second),
	}
	router.Get("/", p.index)
	router.Post("/refresh", p.refresh)

	hcfg := huma.DefaultConfig("Executive Dashboard API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	hcfg.DocsPath = ""
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerDocs(router, basePath)
	registerHealth(group, cfg.Dashboard)
	registerSnapshot(group, cfg.Dashboard)
	registerRisks(group, cfg.Dashboard)
	registerMilestones(group, cfg.Dashboard)
	registerTasks(group, cfg.Dashboard)
	registerRefresh(group, cfg.Dashboard)
	registerOpenAPI(router, api, basePath)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	if errors.Is(err, dashboard.ErrNotReady) {
		return newAPIError(http.StatusServiceUnavailable, "not_ready", err.Error(), nil)
	}
	if errors.Is(err, insight.ErrUnknownView) ||
		errors.Is(err, modal.ErrUnknownColumn) ||
		errors.Is(err, modal.ErrUnknownDirection) {
		return newAPIError(http.StatusBadRequest, "bad_request", err.Error(), nil)
	}
	var fe *client.FetchError
	if errors.As(err, &fe) {
		var details map[string]any
		if fe.Status != 0 {
			details = map[string]any{"upstream_status": fe.Status}
		}
		return newAPIError(http.StatusBadGateway, "fetch_failed", fe.Error(), details)
	}
	return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": err.Error()})
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusServiceUnavailable:
		return "not_ready"
	case http.StatusBadGateway:
		return "fetch_failed"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerDocs(r chi.Router, basePath string) {
	r.Get(path.Join(basePath, "docs"), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, swaggerHTML(basePath))
	})
}

func registerOpenAPI(r chi.Router, api huma.API, basePath string) {
	var (
		once sync.Once
		spec []byte
	)
	r.Get(path.Join(basePath, "openapi.json"), func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			oas := api.OpenAPI()
			ensureDefaultErrorResponses(oas)
			spec, _ = json.Marshal(oas)
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
}

func ensureDefaultErrorResponses(oas *huma.OpenAPI) {
	if oas == nil || oas.Paths == nil || oas.Components == nil || oas.Components.Schemas == nil {
		return
	}
	errSchema := oas.Components.Schemas.Schema(reflect.TypeOf(apiError{}), true, "ApiError")
	for _, item := range oas.Paths {
		for _, op := range []*huma.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Options, item.Head, item.Patch, item.Trace,
		} {
			if op == nil {
				continue
			}
			if op.Responses == nil {
				op.Responses = map[string]*huma.Response{}
			}
			op.Responses["default"] = &huma.Response{
				Description: "Error",
				Content: map[string]*huma.MediaType{
					"application/json": {Schema: errSchema},
				},
			}
		}
	}
}

func swaggerHTML(basePath string) string {
	specURL := path.Join("/", path.Join(basePath, "openapi.json"))
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Executive Dashboard API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '%s',
          dom_id: '#swagger-ui'
        });
      };
    </script>
  </body>
</html>`, specURL)
}
