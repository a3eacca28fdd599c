package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/gemini"
	anyhttp "github.com/fwojciec/anydocs/http"
	"github.com/fwojciec/anydocs/lru"
	"gopkg.in/yaml.v3"
)

// Config holds the settings read from the config file and environment.
type Config struct {
	StorageRoot string       `yaml:"storage_root"`
	Database    string       `yaml:"database"`
	Active      string       `yaml:"active"`
	MaxResults  int          `yaml:"max_results"`
	CacheSize   int          `yaml:"cache_size"`
	HTTP        HTTPConfig   `yaml:"http"`
	Gemini      GeminiConfig `yaml:"gemini"`
}

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Addr      string  `yaml:"addr"`
	RateLimit float64 `yaml:"rate_limit"`
}

// GeminiConfig configures question answering.
type GeminiConfig struct {
	Model string `yaml:"model"`

	// APIKey is only read from GEMINI_API_KEY.
	APIKey string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(home string) *Config {
	base := filepath.Join(home, ".anydocs")
	return &Config{
		StorageRoot: filepath.Join(base, "docs"),
		Database:    filepath.Join(base, "anydocs.db"),
		MaxResults:  anydocs.DefaultMaxResults,
		CacheSize:   lru.DefaultCacheSize,
		HTTP: HTTPConfig{
			Addr:      anyhttp.DefaultAddr,
			RateLimit: anyhttp.DefaultRateLimit,
		},
		Gemini: GeminiConfig{
			Model: gemini.DefaultModel,
		},
	}
}

// LoadConfig reads the config file named by ANYDOCS_CONFIG, or
// ~/.anydocs/config.yaml, then applies environment overrides. A missing
// file is not an error.
func LoadConfig(getenv func(string) string) (*Config, error) {
	home := getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	cfg := DefaultConfig(home)

	path := getenv("ANYDOCS_CONFIG")
	if path == "" {
		path = filepath.Join(home, ".anydocs", "config.yaml")
	}
	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(getenv); err != nil {
		return nil, err
	}

	cfg.StorageRoot = expandHome(cfg.StorageRoot, home)
	cfg.Database = expandHome(cfg.Database, home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return anydocs.Errorf(anydocs.EINVALID, "parse config %s: %v", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides(getenv func(string) string) error {
	if v := getenv("ANYDOCS_STORAGE_ROOT"); v != "" {
		c.StorageRoot = v
	}
	if v := getenv("ANYDOCS_DB"); v != "" {
		c.Database = v
	}
	if v := getenv("ANYDOCS_ACTIVE"); v != "" {
		c.Active = v
	}
	if v := getenv("ANYDOCS_MAX_RESULTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return anydocs.Errorf(anydocs.EINVALID, "ANYDOCS_MAX_RESULTS must be an integer, got %q", v)
		}
		c.MaxResults = n
	}
	if v := getenv("ANYDOCS_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	c.Gemini.APIKey = getenv("GEMINI_API_KEY")
	return nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.StorageRoot == "":
		return anydocs.Errorf(anydocs.EINVALID, "storage_root must be set")
	case c.Database == "":
		return anydocs.Errorf(anydocs.EINVALID, "database must be set")
	case c.MaxResults < 1:
		return anydocs.Errorf(anydocs.EINVALID, "max_results must be positive, got %d", c.MaxResults)
	case c.CacheSize < 0:
		return anydocs.Errorf(anydocs.EINVALID, "cache_size must not be negative, got %d", c.CacheSize)
	case c.HTTP.RateLimit < 0:
		return anydocs.Errorf(anydocs.EINVALID, "http.rate_limit must not be negative, got %v", c.HTTP.RateLimit)
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
