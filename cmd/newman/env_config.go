package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-newman/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // NEWMAN_CONFIG: config file name or path
	Converter  string        // NEWMAN_CONVERTER: pandoc binary
	Timeout    time.Duration // NEWMAN_TIMEOUT: per document conversion timeout
	Typesetter string        // NEWMAN_TYPESETTER: compile command
	Template   string        // NEWMAN_TEMPLATE: project template directory
	Workers    int           // NEWMAN_WORKERS: concurrent conversions
}

// knownEnvVars lists valid NEWMAN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NEWMAN_CONFIG":     true,
	"NEWMAN_CONVERTER":  true,
	"NEWMAN_TIMEOUT":    true,
	"NEWMAN_TYPESETTER": true,
	"NEWMAN_TEMPLATE":   true,
	"NEWMAN_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.Getenv("NEWMAN_CONFIG"),
		Converter:  env.Getenv("NEWMAN_CONVERTER"),
		Typesetter: env.Getenv("NEWMAN_TYPESETTER"),
		Template:   env.Getenv("NEWMAN_TEMPLATE"),
	}

	if timeout := env.Getenv("NEWMAN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := env.Getenv("NEWMAN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized NEWMAN_* variables.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range env.Environ() {
		if strings.HasPrefix(kv, "NEWMAN_") {
			name, _, _ := strings.Cut(kv, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the loaded
// config. Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Converter != "" {
		cfg.Converter.Binary = env.Converter
	}
	if env.Timeout > 0 {
		cfg.Converter.Timeout = env.Timeout
	}
	if env.Typesetter != "" {
		cfg.Typesetter.Command = env.Typesetter
	}
	if env.Template != "" {
		cfg.Template.Path = env.Template
	}
}
