package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the optional --config YAML document: output format, default
// verbosity, and the bbolt cache path, so repeated invocations against the
// same log files don't need to repeat flags.
type config struct {
	// Format is the default output format for subcommands that support
	// more than one: "csv" or "json". Defaults to "csv" when omitted.
	Format string `yaml:"format"`

	// Verbose enables debug-level logging during decode.
	Verbose bool `yaml:"verbose"`

	// CachePath, if set, is passed to blackbox.OpenCached instead of
	// blackbox.Open for every file processed.
	CachePath string `yaml:"cache_path"`
}

var validFormats = map[string]bool{
	"csv":  true,
	"json": true,
}

// loadConfig reads the YAML file at path, applies defaults, and validates
// it. An empty path returns the zero-value defaulted config.
func loadConfig(path string) (*config, error) {
	var cfg config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: cannot read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: cannot parse %q: %w", path, err)
		}
	}

	applyConfigDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed for %q: %w", path, err)
	}
	return &cfg, nil
}

func applyConfigDefaults(cfg *config) {
	if cfg.Format == "" {
		cfg.Format = "csv"
	}
}

func validateConfig(cfg *config) error {
	var errs []error
	if !validFormats[cfg.Format] {
		errs = append(errs, fmt.Errorf("format %q must be one of: csv, json", cfg.Format))
	}
	return errors.Join(errs...)
}
