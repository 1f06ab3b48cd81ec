// Package config loads and validates the trailnav configuration: a YAML
// file with validator-tagged structs, defaults for every guidance
// threshold, and environment overrides for deploy-time knobs.
package config

import (
	"errors"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies defaults, validates the
// result and finally applies environment overrides (NATS_URL,
// METRICS_ADDR; a .env file is honored). A missing file is not an error:
// the defaults stand on their own.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, err
			}
		case errors.Is(err, os.ErrNotExist):
			// fall through to defaults
		default:
			return Config{}, err
		}
	}

	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, err
	}

	if u := os.Getenv("NATS_URL"); u != "" {
		cfg.NATS.URL = u
	}
	if a := os.Getenv("METRICS_ADDR"); a != "" {
		cfg.Metrics.Addr = a
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	g := &cfg.Guidance
	if g.OffRouteEnterMeters == 0 {
		g.OffRouteEnterMeters = 50
	}
	if g.OffRouteClearMeters == 0 {
		g.OffRouteClearMeters = 30
	}
	if g.ApproachTurnMeters == 0 {
		g.ApproachTurnMeters = 100
	}
	if g.AtTurnMeters == 0 {
		g.AtTurnMeters = 30
	}
	if g.ArriveMeters == 0 {
		g.ArriveMeters = 30
	}
	if cfg.NATS.SubjectPrefix == "" {
		cfg.NATS.SubjectPrefix = "guidance"
	}
}
