package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable, e.g. RPDGEN_OUTPUT_UNITS.
const EnvPrefix = "RPDGEN"

// Output unit systems.
const (
	UnitsSI = "si"
	UnitsIP = "ip"
)

// Rulesets with project composition rules.
const RulesetASHRAE9012019 = "ashrae9012019"

var ErrInvalid = errors.New("config: invalid configuration")

// Config holds all application configuration.
type Config struct {
	Schema    SchemaConfig    `yaml:"schema" toml:"schema" json:"schema"`
	Output    OutputConfig    `yaml:"output" toml:"output" json:"output"`
	Pipeline  PipelineConfig  `yaml:"pipeline" toml:"pipeline" json:"pipeline"`
	Logging   LogConfig       `yaml:"logging" toml:"logging" json:"logging"`
	Server    ServerConfig    `yaml:"server" toml:"server" json:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit" json:"rate_limit"`
}

// SchemaConfig selects the schema documents: "embedded", a directory, or
// an http(s) base URL.
type SchemaConfig struct {
	Source  string `envconfig:"SOURCE" default:"embedded" yaml:"source" toml:"source" json:"source"`
	Version string `envconfig:"VERSION" default:"0.1.7" yaml:"version" toml:"version" json:"version"`
}

// OutputConfig controls the written document.
type OutputConfig struct {
	Units         string `envconfig:"UNITS" default:"si" yaml:"units" toml:"units" json:"units"`
	Indent        int    `envconfig:"INDENT" default:"2" yaml:"indent" toml:"indent" json:"indent"`
	Compression   string `envconfig:"COMPRESSION" yaml:"compression" toml:"compression" json:"compression"`
	ReportingName string `envconfig:"REPORTING_NAME" yaml:"reporting_name" toml:"reporting_name" json:"reporting_name"`
	Notes         string `envconfig:"NOTES" yaml:"notes" toml:"notes" json:"notes"`
}

// PipelineConfig controls model conversion.
type PipelineConfig struct {
	Ruleset     string `envconfig:"RULESET" default:"ashrae9012019" yaml:"ruleset" toml:"ruleset" json:"ruleset"`
	Concurrency int    `envconfig:"CONCURRENCY" default:"1" yaml:"concurrency" toml:"concurrency" json:"concurrency"`
	// StrictOutputs turns missing simulation outputs into model failures.
	StrictOutputs bool `envconfig:"STRICT_OUTPUTS" default:"false" yaml:"strict_outputs" toml:"strict_outputs" json:"strict_outputs"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info" yaml:"level" toml:"level" json:"level"`
	Development bool   `envconfig:"DEV" default:"false" yaml:"development" toml:"development" json:"development"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080" yaml:"port" toml:"port" json:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host" toml:"host" json:"host"`
	// MaxBodyBytes caps uploaded model size.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"33554432" yaml:"max_body_bytes" toml:"max_body_bytes" json:"max_body_bytes"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RPS" default:"10" yaml:"rps" toml:"rps" json:"rps"`
	Burst             int  `envconfig:"BURST" default:"20" yaml:"burst" toml:"burst" json:"burst"`
	Enabled           bool `envconfig:"ENABLED" default:"true" yaml:"enabled" toml:"enabled" json:"enabled"`
}

// Load reads the environment and, when file is not empty, overlays the
// JSON, YAML or TOML file on top of it.
func Load(file string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if file != "" {
		if err := fsutil.DecodeFile(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// defaults.
func LoadOrDefault() *Config {
	cfg, err := Load("")
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains([]string{UnitsSI, UnitsIP}, c.Output.Units) {
		errs = append(errs, fmt.Errorf("output units %q", c.Output.Units))
	}
	if _, err := fsutil.CompressionFor("", c.Output.Compression); err != nil {
		errs = append(errs, err)
	}
	if c.Output.Indent < 0 {
		errs = append(errs, fmt.Errorf("output indent %d", c.Output.Indent))
	}
	if c.Pipeline.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("pipeline concurrency %d", c.Pipeline.Concurrency))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Schema: SchemaConfig{
			Source:  "embedded",
			Version: "0.1.7",
		},
		Output: OutputConfig{
			Units:  UnitsSI,
			Indent: 2,
		},
		Pipeline: PipelineConfig{
			Ruleset:     RulesetASHRAE9012019,
			Concurrency: 1,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Server: ServerConfig{
			Port:         "8080",
			Host:         "0.0.0.0",
			MaxBodyBytes: 32 << 20,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
			Enabled:           true,
		},
	}
}
