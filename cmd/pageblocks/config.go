package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings read from the YAML config file. Command-line
// flags take precedence over these values.
type Config struct {
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	Insecure    bool          `yaml:"insecure"`
	Concurrency int           `yaml:"concurrency"`

	// Vocabulary terms select the top links of a page.
	Vocabulary []string `yaml:"vocabulary"`

	// MaxPages caps the sub-pages of a crawl.
	MaxPages int `yaml:"max_pages"`
}

// LoadConfig reads the config file at path. A missing file yields an
// empty Config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("PAGEBLOCKS_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pageblocks", "config.yaml")
}
