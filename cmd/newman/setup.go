package main

import (
	"fmt"
	"time"

	"github.com/alnah/go-newman"
	"github.com/alnah/go-newman/internal/config"
	"github.com/alnah/go-newman/internal/logging"
	"github.com/alnah/go-newman/internal/pandoc"
)

// loadConfig resolves the configuration of a command run.
// The --config flag wins over NEWMAN_CONFIG; without either the built-in
// defaults apply. Environment overrides are applied on top.
func loadConfig(flags commonFlags, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env)

	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// validateConfig re-checks the config after flag and env overrides.
func validateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

// resolveTimeout parses a --timeout flag value. Empty keeps fallback.
func resolveTimeout(flagValue string, fallback time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid --timeout %q: %v", ErrUsage, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, d)
	}
	return d, nil
}

// newLogger creates the command logger on stderr.
func newLogger(flags commonFlags, env *Environment) *logging.Logger {
	return logging.NewWithLevel(env.Stderr, logging.LevelFor(flags.verbose, flags.quiet))
}

// newConverter builds the library converter from config.
func newConverter(cfg *config.Config, env *Environment) (*newman.Converter, error) {
	markup := env.Markup
	if markup == nil {
		markup = pandoc.NewConverter(cfg.Converter.Binary)
	}

	rewrites := make([]newman.Rewrite, len(cfg.Markup.Rewrites))
	for i, rw := range cfg.Markup.Rewrites {
		rewrites[i] = newman.Rewrite{Pattern: rw.Pattern, Replace: rw.Replace}
	}

	conv, err := newman.NewConverter(
		newman.WithMarkupConverter(markup),
		newman.WithTimeout(cfg.Converter.Timeout),
		newman.WithPrefixes(cfg.Split.Prefixes...),
		newman.WithKeepPreamble(cfg.Split.KeepPreamble),
		newman.WithRemovedTags(cfg.Markup.RemoveTags...),
		newman.WithImageExtensions(cfg.Markup.ImageExtensions...),
		newman.WithRewrites(rewrites...),
	)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// projectLayout maps the config onto the library layout.
func projectLayout(cfg *config.Config) newman.Layout {
	return newman.Layout{
		SourceDir: cfg.Project.SourceDir,
		MediaDir:  cfg.Project.MediaDir,
		Master:    cfg.Project.Master,
		Sentinel:  cfg.Project.Sentinel,
	}
}
