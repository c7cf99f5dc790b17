// Package config loads and validates the replay configuration from a
// yaml or json file with environment overrides.
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

	"github.com/courierlab/dispatchsim/core/factory"
)

type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Trace      TraceConfig      `json:"trace"`
	Records    RecordsConfig    `json:"records"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// TraceConfig points at the cycle snapshot trace to replay.
type TraceConfig struct {
	Path string `json:"path"`
}

// MetricsConfig lists the metrics sinks to attach, dispatched by type.
type MetricsConfig struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// Load reads the file at path, applies DS_ environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("DS_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ds_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulation.SetDefaults()
	cfg.Records.SetDefaults()
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Records.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
