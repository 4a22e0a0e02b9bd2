package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"execdash/internal/insight"
)

// FileName is the config file looked up in the working directory.
const FileName = "execdash.yml"

// Config models execdash.yml.
type Config struct {
	Upstream struct {
		BaseURL string `yaml:"base_url"`
		Path    string `yaml:"path"`
		Timeout string `yaml:"timeout"`
	} `yaml:"upstream"`
	Refresh struct {
		Interval string `yaml:"interval"`
	} `yaml:"refresh"`
	Server struct {
		Addr        string `yaml:"addr"`
		APIBasePath string `yaml:"api_base_path"`
		Timezone    string `yaml:"timezone"`
	} `yaml:"server"`
	Milestones []Milestone `yaml:"milestones"`
}

// Milestone maps phase summaries containing any keyword to Label.
type Milestone struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("config.upstream.base_url is required")
	}
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config.upstream.base_url %q is not an absolute url", c.Upstream.BaseURL)
	}
	if _, err := parseDuration("upstream.timeout", c.Upstream.Timeout); err != nil {
		return err
	}
	if _, err := parseDuration("refresh.interval", c.Refresh.Interval); err != nil {
		return err
	}
	if p := c.Server.APIBasePath; p != "" && !strings.HasPrefix(p, "/") {
		return fmt.Errorf("config.server.api_base_path must start with /")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for i, m := range c.Milestones {
		if m.Label == "" {
			return fmt.Errorf("milestone %d has empty label", i)
		}
		if len(m.Keywords) == 0 {
			return fmt.Errorf("milestone %q has no keywords", m.Label)
		}
		for _, k := range m.Keywords {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("milestone %q has empty keyword", m.Label)
			}
		}
	}
	return nil
}

func parseDuration(field, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config.%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config.%s must not be negative", field)
	}
	return d, nil
}

// UpstreamTimeout is zero when unset.
func (c *Config) UpstreamTimeout() time.Duration {
	d, _ := parseDuration("upstream.timeout", c.Upstream.Timeout)
	return d
}

// RefreshInterval is zero when unset.
func (c *Config) RefreshInterval() time.Duration {
	d, _ := parseDuration("refresh.interval", c.Refresh.Interval)
	return d
}

// Location resolves server.timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Server.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config.server.timezone: %w", err)
	}
	return loc, nil
}

// MilestoneTable converts the configured milestones, falling back to the
// built-in table when none are set.
func (c *Config) MilestoneTable() insight.MilestoneTable {
	if len(c.Milestones) == 0 {
		return insight.DefaultMilestones
	}
	table := make(insight.MilestoneTable, 0, len(c.Milestones))
	for _, m := range c.Milestones {
		table = append(table, insight.KeywordRule(m.Label, m.Keywords...))
	}
	return table
}

// GenerateDefault returns default config YAML pointing at baseURL.
func GenerateDefault(baseURL string) string {
	return fmt.Sprintf(defaultTemplate, baseURL)
}

// Default returns the default Config struct.
func Default(baseURL string) *Config {
	var cfg Config
	_ = yaml.NewDecoder(bytes.NewBufferString(GenerateDefault(baseURL))).Decode(&cfg)
	return &cfg
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

// LoadOptional returns nil,nil if the config file does not exist.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return FromYAML(data)
}

const defaultTemplate = `upstream:
  base_url: %s
  path: /api/dashboard
  timeout: 30s

refresh:
  interval: 5m

server:
  addr: ":8080"
  api_base_path: /api/v0

milestones:
  - label: POC validation complete
    keywords: [poc, validation]
  - label: AWS Foundation & Networking deployed
    keywords: [foundation, planning, networking, sso, organization]
  - label: Infrastructure as Code modules complete
    keywords: [infrastructure, terraform, iac]
  - label: Monitoring & alerting fully operational
    keywords: [monitoring, log]
  - label: Database migration to RDS complete
    keywords: [database, migration, rds]
  - label: App modernization & CI/CD pipelines deployed
    keywords: [modernization, ci/cd, pipeline, containeriz]
  - label: Integ environment migrated to AWS
    keywords: [integ]
  - label: Production cutover executed
    keywords: [cutover, full migration, testing]
  - label: Legacy infrastructure decommissioned
    keywords: [optimization, decommission]
`
