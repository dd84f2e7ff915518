package factory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceConfig describes one backend to register, in priority order decided
// by the strategy. Params carries backend-specific settings: "path" for
// Database sources, "root" for FileSystem sources.
type SourceConfig struct {
	Type     string            `yaml:"type"`
	Name     string            `yaml:"name"`
	Priority int               `yaml:"priority"`
	Params   map[string]string `yaml:"params,omitempty"`
}

// RoutingConfig selects and tunes the routing strategy. One routing config
// applies to all three entity routers.
type RoutingConfig struct {
	Strategy     string   `yaml:"strategy"`
	CacheTypes   []string `yaml:"cache_types,omitempty"`
	WriteThrough *bool    `yaml:"write_through,omitempty"`
	PrimaryType  string   `yaml:"primary_type,omitempty"`
	AutoFailback *bool    `yaml:"auto_failback,omitempty"`
	Algorithm    string   `yaml:"algorithm,omitempty"`

	ResponseTimeWeight *float64 `yaml:"response_time_weight,omitempty"`
	SuccessRateWeight  *float64 `yaml:"success_rate_weight,omitempty"`
}

// Config is the top-level assembly document.
type Config struct {
	Sources []SourceConfig `yaml:"sources"`
	Routing RoutingConfig  `yaml:"routing"`
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return cfg, nil
}
