// Package config loads typelayout's optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".typelayout.yaml"

// Valid values for Format and Color.
var (
	ValidFormats = []string{"text", "json", "yaml"}
	ValidColors  = []string{"auto", "always", "never"}
)

// Config holds defaults for command-line flags.
type Config struct {
	Arch   string `yaml:"arch"`
	Format string `yaml:"format"`
	Color  string `yaml:"color"`
	All    bool   `yaml:"all"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Arch:   runtime.GOARCH,
		Format: "text",
		Color:  "auto",
	}
}

// Load reads path, or DefaultFile if path is empty. A missing DefaultFile
// yields Default(); a missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks Format and Color against their allowed values.
func (c Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if !slices.Contains(ValidColors, c.Color) {
		return fmt.Errorf("invalid color %q: must be one of %v", c.Color, ValidColors)
	}
	return nil
}
