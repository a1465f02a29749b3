package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"gopkg.in/yaml.v3"
)

// Defaults used when no config file is present.
const (
	DefaultExtension    = ".csv"
	DefaultOutputSuffix = "_C"
)

type Config struct {
	// DailyAccount is the account value that marks records as daily pass-through entries
	DailyAccount string `yaml:"daily_account,omitempty"`

	// FlushOrder is "sorted" (ascending account_text key) or "first-seen"
	FlushOrder string `yaml:"flush_order,omitempty"`

	// Extension selects files in batch mode, including the dot
	Extension string `yaml:"extension,omitempty"`

	// OutputSuffix is inserted between the doubled extension of batch outputs
	OutputSuffix string `yaml:"output_suffix,omitempty"`

	// Encoding of the input files: utf-8, latin1 or cp1252
	Encoding string `yaml:"encoding,omitempty"`

	// StrictInput turns an unreadable input file into an error instead of an empty result
	StrictInput bool `yaml:"strict_input,omitempty"`

	// Currency is used for display when a record has no currency column
	Currency string `yaml:"currency,omitempty"`

	// compiled fields (not serialized)
	order    FlushOrder        `yaml:"-"`
	encoding encoding.Encoding `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.datev-compressor/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".datev-compressor", "config.yaml")
}

// NewDefaultConfig creates a config with every field at its default.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	if err := cfg.compile(); err != nil {
		// defaults always compile
		panic(err)
	}
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// compile fills defaults and validates the enumerated fields
func (c *Config) compile() error {
	if c.DailyAccount == "" {
		c.DailyAccount = DefaultDailyAccount
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.OutputSuffix == "" {
		c.OutputSuffix = DefaultOutputSuffix
	}
	if c.Encoding == "" {
		c.Encoding = EncodingUTF8
	}
	if c.FlushOrder == "" {
		c.FlushOrder = string(OrderSorted)
	}

	order, err := ParseFlushOrder(c.FlushOrder)
	if err != nil {
		return fmt.Errorf("invalid flush_order: %w", err)
	}
	c.order = order

	enc, err := LookupEncoding(c.Encoding)
	if err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}
	c.encoding = enc
	return nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Order returns the compiled flush order
func (c *Config) Order() FlushOrder {
	if c == nil || c.order == "" {
		return OrderSorted
	}
	return c.order
}

// SourceEncoding returns the compiled input encoding
func (c *Config) SourceEncoding() encoding.Encoding {
	if c == nil {
		return nil
	}
	return c.encoding
}

// Compactor builds the aggregator described by this config
func (c *Config) Compactor() *Compactor {
	if c == nil {
		return NewCompactor()
	}
	return &Compactor{DailyAccount: c.DailyAccount, Order: c.Order()}
}
