package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full engine configuration.
type Config struct {
	HTTP       HTTPConfig       `json:"http"`
	Logging    LoggingConfig    `json:"logging"`
	PlanStore  PlanStoreConfig  `json:"planstore"`
	MonteCarlo MonteCarloConfig `json:"montecarlo"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// Load reads the configuration file (yaml or json) and applies TAKT_
// environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("TAKT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "takt_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.PlanStore.SetDefaults()
	cfg.MonteCarlo.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.PlanStore.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MonteCarlo.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.PlanStore.SetDefaults()
	cfg.MonteCarlo.SetDefaults()
	cfg.Metrics.SetDefaults()
	return cfg
}
