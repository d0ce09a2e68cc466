// Package config loads logview settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/parser"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultFilesPattern matches the daily and single-file Laravel log layouts.
const DefaultFilesPattern = "storage/logs/laravel*.log"

// Config holds all user-tunable settings.
type Config struct {
	Pattern      string            `mapstructure:"pattern" yaml:"pattern"`
	Levels       []string          `mapstructure:"levels" yaml:"levels"`
	DisplayNames map[string]string `mapstructure:"display_names" yaml:"display_names,omitempty"`
	Leading      string            `mapstructure:"leading" yaml:"leading"`
	PerPage      int               `mapstructure:"per_page" yaml:"per_page"`
	LogLevel     string            `mapstructure:"log_level" yaml:"log_level"`
	Files        FilesConfig       `mapstructure:"files" yaml:"files"`
	Alerts       []string          `mapstructure:"alerts" yaml:"alerts,omitempty"`
	Color        bool              `mapstructure:"color" yaml:"color"`
}

// FilesConfig controls log file discovery.
type FilesConfig struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
}

// Default returns the built-in configuration.
func Default() *Config {
	levels := make([]string, 0, 8)
	for _, l := range entry.AllLevels() {
		levels = append(levels, l.String())
	}
	return &Config{
		Pattern:  parser.DefaultPattern,
		Levels:   levels,
		Leading:  parser.LeadingSynthesize.String(),
		PerPage:  20,
		LogLevel: "info",
		Files:    FilesConfig{Pattern: DefaultFilesPattern},
		Color:    true,
	}
}

// Load reads configuration. When path is empty, .logview.yaml is looked up
// in the working directory and then in $HOME; a missing file is not an
// error. Environment variables prefixed LOGVIEW_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".logview")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("logview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("pattern", d.Pattern)
	v.SetDefault("levels", d.Levels)
	v.SetDefault("leading", d.Leading)
	v.SetDefault("per_page", d.PerPage)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("files.pattern", d.Files.Pattern)
	v.SetDefault("color", d.Color)
}

// Validate reports every problem found, each wrapped with ErrInvalidConfig.
func (c *Config) Validate() error {
	var problems []error

	if _, err := parser.CompileGrammar(c.patternOrDefault()); err != nil {
		problems = append(problems, fmt.Errorf("pattern: %w", err))
	}
	if _, err := entry.NewLevels(c.Levels, c.DisplayNames); err != nil {
		problems = append(problems, fmt.Errorf("levels: %w", err))
	}
	if _, err := parser.ParseLeadingPolicy(c.Leading); err != nil {
		problems = append(problems, fmt.Errorf("leading: %w", err))
	}
	if c.PerPage < 1 {
		problems = append(problems, fmt.Errorf("per_page: must be at least 1, got %d", c.PerPage))
	}
	for k := range c.DisplayNames {
		key := strings.ToLower(k)
		if key != entry.KeyAll && key != entry.KeyUnknown && !entry.ParseLevel(key).Known() {
			problems = append(problems, fmt.Errorf("display_names: unknown key %q", k))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

func (c *Config) patternOrDefault() string {
	if c.Pattern == "" {
		return parser.DefaultPattern
	}
	return c.Pattern
}

// LevelSet returns the recognized level set with display labels.
func (c *Config) LevelSet() (entry.Levels, error) {
	return entry.NewLevels(c.Levels, c.DisplayNames)
}

// ParserOptions converts the configuration into parser options.
func (c *Config) ParserOptions() (parser.Options, error) {
	levels, err := c.LevelSet()
	if err != nil {
		return parser.Options{}, fmt.Errorf("%w: levels: %w", ErrInvalidConfig, err)
	}
	leading, err := parser.ParseLeadingPolicy(c.Leading)
	if err != nil {
		return parser.Options{}, fmt.Errorf("%w: leading: %w", ErrInvalidConfig, err)
	}
	return parser.Options{
		Pattern: c.Pattern,
		Levels:  levels,
		Leading: leading,
	}, nil
}

// Parser builds a parser from the configuration.
func (c *Config) Parser() (*parser.Parser, error) {
	opts, err := c.ParserOptions()
	if err != nil {
		return nil, err
	}
	return parser.New(opts)
}

// Write dumps the configuration as YAML.
func Write(w io.Writer, c *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
