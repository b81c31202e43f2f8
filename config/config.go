package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/delay"
	"github.com/kilianp07/platalloc/core/metrics"
	"github.com/kilianp07/platalloc/core/model"
	"github.com/kilianp07/platalloc/core/timetable"
	"github.com/kilianp07/platalloc/infra/logger"
	"github.com/kilianp07/platalloc/infra/mqtt"
)

// HTTPConfig configures the JSON API listener.
type HTTPConfig struct {
	// Addr is the listen address. Empty disables the API.
	Addr string `json:"addr"`
}

// Config is the service configuration, one field per section.
type Config struct {
	Assign    assign.Config    `json:"assign"`
	Delay     delay.Config     `json:"delay"`
	Window    model.Window     `json:"window"`
	Timetable timetable.Config `json:"timetable"`
	MQTT      mqtt.Config      `json:"mqtt"`
	Metrics   metrics.Config   `json:"metrics"`
	HTTP      HTTPConfig       `json:"http"`
	Logging   logger.Config    `json:"logging"`
}

// Default returns the configuration used when no file sets a value.
func Default() Config {
	cfg := Config{Assign: assign.DefaultConfig()}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Delay.SetDefaults()
	c.Window.SetDefaults()
	c.MQTT.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section and reports all failures.
func (c Config) Validate() error {
	var errs []error
	for name, v := range map[string]interface{ Validate() error }{
		"assign":  c.Assign,
		"delay":   c.Delay,
		"window":  c.Window,
		"mqtt":    c.MQTT,
		"logging": c.Logging,
	} {
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads path, applies K_ prefixed environment overrides and decodes the
// result on top of the defaults. An empty path loads the environment only.
// K_ASSIGN__WEIGHTS__LOAD=0 sets assign.weights.load.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Config{Assign: assign.DefaultConfig()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
