// Package config loads pipeline configuration from the environment. Only
// the orchestration layer is configured here; the extraction core takes no
// configuration beyond its input file.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the complete pipeline configuration.
type Config struct {
	Output   OutputConfig   `koanf:"output"`
	Workers  int            `koanf:"workers"`
	Log      LogConfig      `koanf:"log"`
	Postgres PostgresConfig `koanf:"postgres"`
	LLM      LLMConfig      `koanf:"llm"`
}

// OutputConfig controls where extraction JSON lands.
type OutputConfig struct {
	Dir string `koanf:"dir"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "console" or "json"
}

// PostgresConfig holds the persistence collaborator's connection string.
type PostgresConfig struct {
	DSN string `koanf:"dsn"`
}

// LLMConfig holds the documentation collaborator's model settings.
type LLMConfig struct {
	Key   string `koanf:"key"`
	Model string `koanf:"model"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Output:  OutputConfig{Dir: "outputs"},
		Workers: 1,
		Log:     LogConfig{Level: "info", Format: "console"},
		LLM:     LLMConfig{Model: "gemini-2.5-flash"},
	}
}

// Load reads XLSDOC_* environment variables over the defaults.
//
//	XLSDOC_OUTPUT_DIR    -> output.dir
//	XLSDOC_WORKERS       -> workers
//	XLSDOC_LOG_LEVEL     -> log.level
//	XLSDOC_LOG_FORMAT    -> log.format
//	XLSDOC_POSTGRES_DSN  -> postgres.dsn
//	XLSDOC_LLM_KEY       -> llm.key
//	XLSDOC_LLM_MODEL     -> llm.model
func Load() (*Config, error) {
	cfg := Default()
	k := koanf.New(".")
	if err := k.Load(env.Provider("XLSDOC_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "XLSDOC_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
