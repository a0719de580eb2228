package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. BRDOCS_GENERATOR_SEED.
const EnvPrefix = "BRDOCS_"

// DefaultPath is read when Load is given an empty path.
const DefaultPath = "configs/config.yaml"

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment" validate:"required,oneof=development staging production test"`
	LogLevel    string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	Generator GeneratorConfig `koanf:"generator"`
	Phone     PhoneConfig     `koanf:"phone"`
	CPF       CPFConfig       `koanf:"cpf"`
	Batch     BatchConfig     `koanf:"batch"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

type GeneratorConfig struct {
	// Seed 0 draws a random seed at startup.
	Seed      uint64 `koanf:"seed"`
	Count     int    `koanf:"count" validate:"min=1,max=100000"`
	Formatted bool   `koanf:"formatted"`
}

type PhoneConfig struct {
	Style string `koanf:"style" validate:"oneof=international national local"`
}

type CPFConfig struct {
	Mask bool `koanf:"mask"`
}

type BatchConfig struct {
	Concurrency int `koanf:"concurrency" validate:"min=1,max=1024"`
}

type MetricsConfig struct {
	MeterName string `koanf:"meter_name" validate:"required"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Generator: GeneratorConfig{
			Count: 1,
		},
		Phone: PhoneConfig{
			Style: "international",
		},
		Batch: BatchConfig{
			Concurrency: 8,
		},
		Metrics: MetricsConfig{
			MeterName: "brdocs",
		},
	}
}

// Load layers defaults, an optional YAML file and BRDOCS_ environment
// variables. A .env file in the working directory is loaded into the
// environment first when present. An empty path falls back to DefaultPath,
// which may be missing; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps BRDOCS_GENERATOR_SEED to generator.seed. Only the first
// underscore after the section separates levels, so BRDOCS_LOG_LEVEL
// stays log_level and BRDOCS_METRICS_METER_NAME becomes metrics.meter_name.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}

	switch section {
	case "generator", "phone", "cpf", "batch", "metrics":
		return section + "." + rest
	default:
		return key
	}
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
