// Package config loads nestedheaders settings.
//
// Settings are resolved in three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/nestedheaders/config.toml
//  3. Environment variables prefixed with NESTEDHEADERS_, for example
//     NESTEDHEADERS_SERVER_ADDR or NESTEDHEADERS_CACHE_REDIS_URL
//
// Example file:
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "15s"
//
//	[render]
//	format = "html"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/render"
)

// AppName names the configuration and cache directories.
const AppName = "nestedheaders"

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "NESTEDHEADERS"

// Config is the complete application configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache" envconfig:"CACHE"`
	Server ServerConfig `toml:"server" envconfig:"SERVER"`
	Render RenderConfig `toml:"render" envconfig:"RENDER"`
}

// CacheConfig selects and tunes the cache backend. A RedisURL takes
// precedence over Dir.
type CacheConfig struct {
	Dir      string        `toml:"dir" envconfig:"DIR"`
	RedisURL string        `toml:"redis_url" envconfig:"REDIS_URL"`
	Prefix   string        `toml:"prefix" envconfig:"PREFIX"`
	TTL      time.Duration `toml:"ttl" envconfig:"TTL"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Addr            string        `toml:"addr" envconfig:"ADDR"`
	ReadTimeout     time.Duration `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64         `toml:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Format string `toml:"format" envconfig:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			TTL: 7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Render: RenderConfig{
			Format: render.FormatText,
		},
	}
}

// Load reads the configuration file at path and applies environment
// overrides. An empty path means [DefaultPath], which may be absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			switch {
			case os.IsNotExist(err) && !explicit:
			case os.IsNotExist(err):
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
			default:
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config file %s", path)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config from environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.addr cannot be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	return errors.ValidateFormat(c.Render.Format, render.ValidFormats)
}

// CacheDir returns the configured cache directory or [DefaultCacheDir].
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultPath returns $XDG_CONFIG_HOME/nestedheaders/config.toml, falling back
// to ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// DefaultCacheDir returns the cache directory using XDG standard (~/.cache/nestedheaders/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
