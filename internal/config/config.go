package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mcnp-csg/internal/deck"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration file layout.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	Strict       bool   `yaml:"strict"`
	MaxFillDepth int    `yaml:"max_fill_depth"`
	Export       Export `yaml:"export"`
}

// Export controls the export command.
type Export struct {
	Format           string `yaml:"format"`
	IncludeTree      bool   `yaml:"include_tree"`
	IncludeInstances *bool  `yaml:"include_instances"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config, fills defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.LogFormat == "" {
		c.LogFormat = "text"
	}

	if c.MaxFillDepth == 0 {
		c.MaxFillDepth = deck.DefaultMaxFillDepth
	}

	if c.Export.Format == "" {
		c.Export.Format = "yaml"
	}

	if c.Export.IncludeInstances == nil {
		on := true
		c.Export.IncludeInstances = &on
	}
}

// Validate checks the values that have a closed set of choices.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}

	if c.Export.Format != "yaml" {
		return fmt.Errorf("%w: export.format %q (only yaml is supported)", ErrInvalid, c.Export.Format)
	}

	if c.MaxFillDepth < 0 {
		return fmt.Errorf("%w: max_fill_depth %d", ErrInvalid, c.MaxFillDepth)
	}

	return nil
}

// DeckOptions returns the deck options the configuration asks for. The
// logger is left for the caller to set.
func (c *Config) DeckOptions() deck.Options {
	opts := deck.DefaultOptions()
	opts.MaxFillDepth = c.MaxFillDepth

	return opts
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}
