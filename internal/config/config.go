// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the credential goes to the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"dbchat/cli/internal/xdg"
)

const fileName = "config.toml"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL         string    `toml:"api_url"`
	TimeoutSeconds int       `toml:"timeout_seconds"`
	PageSize       int       `toml:"page_size"`
	LogLevel       string    `toml:"log_level"`
	Defaults       Defaults  `toml:"defaults"`
	Endpoints      Endpoints `toml:"endpoints"`
}

// Defaults are selections applied when a session starts.
type Defaults struct {
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	Connection string `toml:"connection"`
}

// Endpoints overrides individual service paths. Empty values keep the built-in path.
type Endpoints struct {
	Register         string `toml:"register"`
	Token            string `toml:"token"`
	GenerateKey      string `toml:"generate_key"`
	ListConnections  string `toml:"list_connections"`
	NewConnection    string `toml:"new_connection"`
	DBInfo           string `toml:"db_info"`
	Providers        string `toml:"providers"`
	Models           string `toml:"models"`
	Answer           string `toml:"answer"`
	SaveQuery        string `toml:"save_query"`
	ListSavedQueries string `toml:"list_saved_queries"`
	DeleteQuery      string `toml:"delete_query"`
	APIKeys          string `toml:"api_keys"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		TimeoutSeconds: 60,
		PageSize:       5,
		LogLevel:       "info",
	}
}

// Timeout returns the per-request timeout for service calls.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Path returns the path to the config file.
func Path() (string, error) {
	return xdg.ConfigFile(fileName)
}

// Load reads configuration; missing file returns defaults.
// Environment variables are applied last.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	c, err := LoadFile(p)
	if err != nil {
		return c, err
	}
	applyEnv(&c)
	return c, nil
}

// LoadFile reads configuration from an explicit path.
func LoadFile(p string) (Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(p, &c); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return c, err
	}
	fillDefaults(&c)
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes configuration to an explicit path.
func SaveFile(p string, c Config) error {
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// fillDefaults restores zero values a partial file left behind.
func fillDefaults(c *Config) {
	d := Default()
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = d.APIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv("DBCHAT_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DBCHAT_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if os.Getenv("DBCHAT_VERBOSE") == "1" {
		c.LogLevel = "debug"
	}
}

// Keys lists the settings Set accepts.
var Keys = []string{
	"api_url", "timeout_seconds", "page_size", "log_level",
	"defaults.provider", "defaults.model", "defaults.connection",
}

// Set assigns one setting by its file key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "api_url":
		c.APIURL = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive number, got %q", value)
		}
		c.TimeoutSeconds = n
	case "page_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("page_size must be a positive number, got %q", value)
		}
		c.PageSize = n
	case "log_level":
		c.LogLevel = value
	case "defaults.provider":
		c.Defaults.Provider = value
	case "defaults.model":
		c.Defaults.Model = value
	case "defaults.connection":
		c.Defaults.Connection = value
	default:
		return fmt.Errorf("unknown setting %q, use one of: %s", key, strings.Join(Keys, ", "))
	}
	return nil
}
