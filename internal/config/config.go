// Package config loads server configuration from embedded yaml defaults,
// overridable with COOKBOOK_-prefixed environment variables
// (e.g. COOKBOOK_DATABASE_PATH).
package config

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	koanffs "github.com/knadh/koanf/providers/fs"
	"github.com/knadh/koanf/v2"
)

// Database configures the sqlite store.
type Database struct {
	// Path is the sqlite database file.
	Path string `koanf:"path"`
}

// Scraper configures outbound page fetching.
type Scraper struct {
	// UserAgent identifies the importer to scraped sites.
	UserAgent string `koanf:"useragent"`

	// TimeoutSeconds bounds a single page fetch.
	TimeoutSeconds int `koanf:"timeoutseconds"`

	// MaxRetries bounds detail-fetch retries in the batch driver.
	MaxRetries int `koanf:"maxretries"`
}

type Config struct {
	// Address is the listen address of the HTTP API.
	Address string `koanf:"address"`

	Database Database `koanf:"database"`
	Scraper  Scraper  `koanf:"scraper"`
}

// Load reads cookbook.yaml from confFiles and applies env overrides.
func Load(confFiles fs.FS) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(koanffs.Provider(confFiles, "cookbook.yaml"), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := k.Load(env.Provider("COOKBOOK_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "COOKBOOK_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var conf Config
	if err := k.Unmarshal("", &conf); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &conf, nil
}
