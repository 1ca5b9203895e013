// Package config handles TOML-based configuration loading and validation.
// Precedence is defaults < config file < environment < command-line flags.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Addr         string        `toml:"addr"`
	Port         int           `toml:"port"`
	AllowedHosts []string      `toml:"allowed_hosts"`
	UserAgent    string        `toml:"user_agent"`
	Timeout      time.Duration `toml:"timeout"`
	MaxPageBytes int64         `toml:"max_page_bytes"`
	Player       string        `toml:"player"`
	DownloadDir  string        `toml:"download_dir"`
	LogFormat    string        `toml:"log_format"`
	Debug        bool          `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Addr:         "",
		Port:         3000,
		AllowedHosts: []string{"kwai.com", "kwai.app", "kw.ai"},
		UserAgent:    "",
		Timeout:      30 * time.Second,
		MaxPageBytes: 10 * 1024 * 1024,
		Player:       "mpv",
		DownloadDir:  "~/Videos/kwai",
		LogFormat:    "auto",
		Debug:        false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kwaigrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "kwaigrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path (or the default location when path is
// empty), merges it with defaults and applies environment overrides.
// A missing file at the default location is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv honours PORT (as set by most PaaS hosts) and KWAIGRAB_* overrides.
func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("KWAIGRAB_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("KWAIGRAB_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("KWAIGRAB_ALLOWED_HOSTS"); v != "" {
		c.AllowedHosts = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", c.Port)
	}

	if len(c.AllowedHosts) == 0 {
		return fmt.Errorf("allowed_hosts cannot be empty")
	}
	for _, h := range c.AllowedHosts {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("allowed_hosts contains an empty entry")
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.MaxPageBytes <= 0 {
		return fmt.Errorf("max_page_bytes must be positive")
	}

	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	validFormats := map[string]bool{
		"auto": true, "console": true, "json": true,
	}
	if !validFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("unsupported log_format %q (valid: auto, console, json)", c.LogFormat)
	}

	return nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Addr, strconv.Itoa(c.Port))
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
