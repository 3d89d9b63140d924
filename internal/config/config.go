package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-newman/internal/fileutil"
	"github.com/alnah/go-newman/internal/pipeline"
	"github.com/alnah/go-newman/internal/yamlutil"
)

// AppDir is the directory under the user config dir searched for named configs.
const AppDir = "newman"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxSentinelLength = 200
	MaxPrefixLength   = 32
	MaxPatternLength  = 1000
)

// Defaults.
const (
	DefaultSourceDir  = "src"
	DefaultMediaDir   = "media"
	DefaultMaster     = "main.tex"
	DefaultSentinel   = "% Main content"
	DefaultConverter  = "pandoc"
	DefaultTimeout    = 2 * time.Minute
	DefaultTypesetter = "tectonic"
	DefaultBuildDir   = "build"
	DefaultDebounce   = 500 * time.Millisecond
)

// Config holds all configuration for a newman project.
type Config struct {
	Project    ProjectConfig    `yaml:"project"`
	Template   TemplateConfig   `yaml:"template"`
	Converter  ConverterConfig  `yaml:"converter"`
	Split      SplitConfig      `yaml:"split"`
	Markup     MarkupConfig     `yaml:"markup"`
	Typesetter TypesetterConfig `yaml:"typesetter"`
}

// ProjectConfig defines the layout of a project directory.
// Directories are relative to the project root.
type ProjectConfig struct {
	SourceDir string `yaml:"sourceDir"` // Article fragments: <sourceDir>/<part>/NNN.tex
	MediaDir  string `yaml:"mediaDir"`  // Extracted assets: <mediaDir>/<part>/
	Master    string `yaml:"master"`    // Master document receiving \input lines
	Sentinel  string `yaml:"sentinel"`  // Line after which inputs are inserted
}

// TemplateConfig selects the project template copied by create.
type TemplateConfig struct {
	Path string `yaml:"path"` // Empty = embedded template
}

// ConverterConfig defines the DOCX to LaTeX converter invocation.
type ConverterConfig struct {
	Binary  string        `yaml:"binary"`
	Timeout time.Duration `yaml:"timeout"` // Per document
}

// SplitConfig defines article boundaries.
type SplitConfig struct {
	Prefixes     []string `yaml:"prefixes"`
	KeepPreamble bool     `yaml:"keepPreamble"` // Emit text before the first marker as an article
}

// MarkupConfig parameterizes the rewrite stages.
type MarkupConfig struct {
	RemoveTags      []string        `yaml:"removeTags"`
	ImageExtensions []string        `yaml:"imageExtensions"`
	Rewrites        []RewriteConfig `yaml:"rewrites"`
}

// RewriteConfig is one extra pattern and replacement, applied last.
type RewriteConfig struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// TypesetterConfig defines the compile command run by watch mode.
type TypesetterConfig struct {
	Command  string        `yaml:"command"`
	Args     []string      `yaml:"args"`
	BuildDir string        `yaml:"buildDir"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate checks required fields, layout paths, and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"project.sourceDir", c.Project.SourceDir},
		{"project.mediaDir", c.Project.MediaDir},
		{"project.master", c.Project.Master},
		{"typesetter.buildDir", c.Typesetter.BuildDir},
	} {
		if err := validateRelativePath(f.name, f.value); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.Project.Sentinel) == "" {
		return fmt.Errorf("%w: project.sentinel: required", ErrInvalidConfig)
	}
	if err := validateFieldLength("project.sentinel", c.Project.Sentinel, MaxSentinelLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.path", c.Template.Path, MaxPathLength); err != nil {
		return err
	}

	if strings.TrimSpace(c.Converter.Binary) == "" {
		return fmt.Errorf("%w: converter.binary: required", ErrInvalidConfig)
	}
	if c.Converter.Timeout <= 0 {
		return fmt.Errorf("%w: converter.timeout: must be positive, got %s", ErrInvalidConfig, c.Converter.Timeout)
	}

	if len(c.Split.Prefixes) == 0 {
		return fmt.Errorf("%w: split.prefixes: at least one prefix required", ErrInvalidConfig)
	}
	for i, p := range c.Split.Prefixes {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: split.prefixes[%d]: empty prefix", ErrInvalidConfig, i)
		}
		if err := validateFieldLength(fmt.Sprintf("split.prefixes[%d]", i), p, MaxPrefixLength); err != nil {
			return err
		}
	}

	for i, rw := range c.Markup.Rewrites {
		if rw.Pattern == "" {
			return fmt.Errorf("%w: markup.rewrites[%d].pattern: required", ErrInvalidConfig, i)
		}
		if err := validateFieldLength(fmt.Sprintf("markup.rewrites[%d].pattern", i), rw.Pattern, MaxPatternLength); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.Typesetter.Command) == "" {
		return fmt.Errorf("%w: typesetter.command: required", ErrInvalidConfig)
	}
	if c.Typesetter.Debounce < 0 {
		return fmt.Errorf("%w: typesetter.debounce: must not be negative, got %s", ErrInvalidConfig, c.Typesetter.Debounce)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRelativePath requires a non-empty path that stays inside the project root.
func validateRelativePath(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s: required", ErrInvalidConfig, fieldName)
	}
	if err := validateFieldLength(fieldName, value, MaxPathLength); err != nil {
		return err
	}
	if filepath.IsAbs(value) || strings.HasPrefix(value, "/") {
		return fmt.Errorf("%w: %s: must be relative to the project root, got %q", ErrInvalidConfig, fieldName, value)
	}
	for _, segment := range strings.FieldsFunc(value, func(r rune) bool { return r == '/' || r == '\\' }) {
		if segment == ".." {
			return fmt.Errorf("%w: %s: must not leave the project root, got %q", ErrInvalidConfig, fieldName, value)
		}
	}
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			SourceDir: DefaultSourceDir,
			MediaDir:  DefaultMediaDir,
			Master:    DefaultMaster,
			Sentinel:  DefaultSentinel,
		},
		Converter: ConverterConfig{
			Binary:  DefaultConverter,
			Timeout: DefaultTimeout,
		},
		Split: SplitConfig{
			Prefixes: clone(pipeline.DefaultPrefixes),
		},
		Markup: MarkupConfig{
			RemoveTags:      clone(pipeline.DefaultRemoveTags),
			ImageExtensions: clone(pipeline.DefaultImageExtensions),
		},
		Typesetter: TypesetterConfig{
			Command:  DefaultTypesetter,
			Args:     []string{"-X", "compile", "main.tex"},
			BuildDir: DefaultBuildDir,
			Debounce: DefaultDebounce,
		},
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.Decode(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order:
// ./<name>.yaml, ./<name>.yml, then the same under <user config dir>/newman/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
