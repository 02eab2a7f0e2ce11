package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultServer = "http://localhost:8080"

// Config is the linkctl.toml file. Login writes the token and username back
// into it.
type Config struct {
	Server   string `toml:"server"`
	Username string `toml:"username,omitempty"`
	Token    string `toml:"token,omitempty"`
}

// DefaultConfigPath is $XDG_CONFIG_HOME/linkctl/linkctl.toml (or the
// platform equivalent), falling back to ./linkctl.toml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "linkctl.toml"
	}
	return filepath.Join(dir, "linkctl", "linkctl.toml")
}

func DefaultConfig() *Config {
	return &Config{Server: defaultServer}
}

// LoadConfig reads path. A missing file is not an error; the defaults are
// returned instead.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	return cfg, nil
}

// SaveConfig writes cfg to path with owner-only permissions, since it holds
// a bearer token.
func SaveConfig(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
