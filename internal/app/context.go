package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"execdash/internal/client"
	"execdash/internal/config"
	"execdash/internal/dashboard"
)

// DefaultUpstream is used when neither the config file nor flags name one.
const DefaultUpstream = "http://localhost:3000"

// ResolveConfig loads the config file, seeding defaults when it is missing.
// A non-empty upstream overrides upstream.base_url. An explicitly named file
// must exist.
func ResolveConfig(path, upstream string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.FromFile(path)
	} else {
		cfg, err = config.LoadOptional(config.FileName)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		base := upstream
		if base == "" {
			base = DefaultUpstream
		}
		cfg = config.Default(base)
	}
	if upstream = strings.TrimSpace(upstream); upstream != "" {
		cfg.Upstream.BaseURL = upstream
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// NewDashboard wires the upstream client and milestone table from cfg.
func NewDashboard(cfg *config.Config, log *zap.Logger) *dashboard.Dashboard {
	c := client.New(cfg.Upstream.BaseURL)
	if cfg.Upstream.Path != "" {
		c.Path = cfg.Upstream.Path
	}
	if t := cfg.UpstreamTimeout(); t > 0 {
		c.Timeout = t
	}
	d := dashboard.New(c, log)
	d.Milestones = cfg.MilestoneTable()
	return d
}
