// Package config handles TOML-based configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Transport names accepted by the transport setting.
const (
	TransportStandard = "standard"
	TransportTLS      = "tls"
)

// Config holds all application configuration.
type Config struct {
	Base        string        `toml:"base"`
	Servers     []string      `toml:"servers"`
	Transport   string        `toml:"transport"`
	Timeout     time.Duration `toml:"timeout"`
	Quality     string        `toml:"quality"`
	Player      string        `toml:"player"`
	DownloadDir string        `toml:"download_dir"`
	History     bool          `toml:"history"`
	Debug       bool          `toml:"debug"`
	CacheTTL    int           `toml:"cache_ttl"` // Minutes, 0 disables caching
	Listen      string        `toml:"listen"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Base:        "animepahe.com",
		Servers:     []string{"kwik", "mp4upload"},
		Transport:   TransportStandard,
		Timeout:     30 * time.Second,
		Quality:     "1080",
		Player:      "mpv",
		DownloadDir: "~/Videos/pahe",
		History:     true,
		CacheTTL:    10,
		Listen:      "127.0.0.1:8089",
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pahe"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pahe"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path and merges with defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

var (
	validPlayers    = []string{"mpv", "vlc", "iina", "celluloid"}
	validQualities  = []string{"360", "480", "720", "1080", "best"}
	validTransports = []string{TransportStandard, TransportTLS}
)

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if !slices.Contains(validPlayers, strings.ToLower(c.Player)) {
		return fmt.Errorf("unsupported player %q (valid: %s)", c.Player, strings.Join(validPlayers, ", "))
	}

	if !slices.Contains(validQualities, c.Quality) {
		return fmt.Errorf("unsupported quality %q (valid: %s)", c.Quality, strings.Join(validQualities, ", "))
	}

	if !slices.Contains(validTransports, c.Transport) {
		return fmt.Errorf("unsupported transport %q (valid: %s)", c.Transport, strings.Join(validTransports, ", "))
	}

	if c.Base == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if strings.Contains(c.Base, "/") {
		return fmt.Errorf("base %q must be a host name, not a URL", c.Base)
	}

	if len(c.Servers) == 0 {
		return fmt.Errorf("at least one server is required")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative, got %d", c.CacheTTL)
	}

	return nil
}

// CacheDuration returns the cache TTL as a duration.
func (c *Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Minute
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "pahe", "history.db"), nil
}
