// Package config loads pagedata settings from an optional YAML file and
// PAGEDATA_* environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/fwojciec/pagedata"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Engines that can capture pages.
const (
	EngineGoja    = "goja"
	EngineBrowser = "browser"
)

// Default configuration values.
const (
	DefaultEngine        = EngineGoja
	DefaultTimeout       = 10 * time.Second
	DefaultConcurrency   = 4
	DefaultRatePerSecond = 1.0
	DefaultMaxNodes      = 100000
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PAGEDATA"

// PatternConfig adds a key pattern to the structured-data classifier.
type PatternConfig struct {
	Tag  string `yaml:"tag"`
	Expr string `yaml:"expr"`
}

// Config holds runtime settings. Values come from the YAML file, then the
// environment, then defaults for anything still unset.
type Config struct {
	Engine        string        `yaml:"engine" envconfig:"ENGINE"`
	Timeout       time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	Concurrency   int           `yaml:"concurrency" envconfig:"CONCURRENCY"`
	RatePerSecond float64       `yaml:"rate_per_second" envconfig:"RATE_PER_SECOND"`
	MaxNodes      int           `yaml:"max_nodes" envconfig:"MAX_NODES"`

	// Patterns and Markers extend the built-in classifier tables.
	Patterns []PatternConfig `yaml:"patterns" ignored:"true"`
	Markers  []string        `yaml:"markers" envconfig:"MARKERS"`

	// KnownGlobals maps extra global names to their section keys.
	KnownGlobals map[string]string `yaml:"known_globals" envconfig:"KNOWN_GLOBALS"`
}

// Load reads the YAML file at path, if path is not empty, and applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pagedata.Errorf(pagedata.ENOTFOUND, "config file not found: %s", path)
		} else if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "invalid config file %s: %v", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "invalid environment: %v", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.RatePerSecond == 0 {
		c.RatePerSecond = DefaultRatePerSecond
	}
	if c.MaxNodes <= 0 {
		c.MaxNodes = DefaultMaxNodes
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.Engine != EngineGoja && c.Engine != EngineBrowser {
		return pagedata.Errorf(pagedata.EINVALID, "unknown engine %q (want %s or %s)", c.Engine, EngineGoja, EngineBrowser)
	}
	if _, err := c.Classifier(); err != nil {
		return err
	}
	return nil
}

// Classifier returns the default classifier extended with the configured
// patterns and markers.
func (c *Config) Classifier() (*pagedata.Classifier, error) {
	cl := pagedata.NewClassifier()
	for _, p := range c.Patterns {
		pattern, err := pagedata.NewPattern(p.Tag, p.Expr)
		if err != nil {
			return nil, err
		}
		cl.Patterns = append(cl.Patterns, pattern)
	}
	for _, m := range c.Markers {
		if !slices.Contains(cl.Markers, m) {
			cl.Markers = append(cl.Markers, m)
		}
	}
	return cl, nil
}

// KnownGlobalTable returns the default known globals followed by the
// configured ones in name order.
func (c *Config) KnownGlobalTable() []pagedata.KnownGlobal {
	table := pagedata.DefaultKnownGlobals()
	names := make([]string, 0, len(c.KnownGlobals))
	for name := range c.KnownGlobals {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		table = append(table, pagedata.KnownGlobal{Global: name, Key: c.KnownGlobals[name]})
	}
	return table
}
