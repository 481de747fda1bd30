// Package config loads the optional circleimage.yaml file that supplies
// defaults for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "circleimage.yaml"

// Config represents the optional circleimage.yaml configuration.
type Config struct {
	Render    RenderConfig    `yaml:"render"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Resources ResourcesConfig `yaml:"resources"`
}

// RenderConfig contains output defaults.
type RenderConfig struct {
	Size    int `yaml:"size,omitempty"`
	Padding int `yaml:"padding,omitempty"`
}

// FetchConfig contains network settings.
type FetchConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`
	ReadTimeout    time.Duration `yaml:"read_timeout,omitempty"`
	MaxConcurrent  int64         `yaml:"max_concurrent,omitempty"`
}

// ResourcesConfig locates the resource bundle.
type ResourcesConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// DefaultSize is the output size used when neither flags nor config set one.
const DefaultSize = 128

// LoadOptional reads circleimage.yaml from dir if present and applies
// defaults. A missing file is not an error.
func LoadOptional(dir string) (*Config, error) {
	cfg := &Config{}
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
	}

	if cfg.Render.Size <= 0 {
		cfg.Render.Size = DefaultSize
	}
	if cfg.Render.Padding < 0 {
		return nil, fmt.Errorf("%s: render.padding must not be negative", FileName)
	}
	if cfg.Resources.Dir != "" && !filepath.IsAbs(cfg.Resources.Dir) {
		cfg.Resources.Dir = filepath.Join(dir, cfg.Resources.Dir)
	}
	return cfg, nil
}
