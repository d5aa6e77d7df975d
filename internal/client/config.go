package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://localhost:8000"
	DefaultTimeoutSec = 10
)

// Config holds client settings, read from TOML then overridden by the environment
type Config struct {
	APIURL     string `toml:"api_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// DefaultConfigPath returns ~/.config/todo/config.toml, or "" if the config dir is unknown
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todo", "config.toml")
}

// LoadConfig builds a Config from defaults, the TOML file at path and the environment.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		APIURL:     DefaultAPIURL,
		TimeoutSec: DefaultTimeoutSec,
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("TODO_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TODO_API_TIMEOUT_SEC"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSec = parsed
		}
	}

	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = DefaultTimeoutSec
	}
	return cfg, nil
}
