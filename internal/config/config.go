// Package config manages persistent client configuration stored as JSON
// in the user's home directory.
package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parleychat/parley/internal/errors"
)

// DefaultServerURL is the chat service endpoint used when no override is configured.
const DefaultServerURL = "http://localhost:5000"

// DefaultSearchDebounceMS matches the quiet period the web client used.
const DefaultSearchDebounceMS = 300

// defaultModels mirrors the server's advertised model list. The server is the
// source of truth for valid values; this is only the initial selector content.
var defaultModels = []string{
	"llama3-8b-8192",
	"llama3-70b-8192",
	"mixtral-8x7b-32768",
	"gemma-7b-it",
}

// Config holds the application configuration
type Config struct {
	ServerURL            string   `json:"server_url"`
	DefaultModel         string   `json:"default_model,omitempty"`
	Models               []string `json:"models,omitempty"`
	NotificationsEnabled bool     `json:"notifications_enabled,omitempty"`
	SearchDebounceMS     int      `json:"search_debounce_ms,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a config populated with defaults, not bound to a file.
func Default() *Config {
	return &Config{
		ServerURL:            DefaultServerURL,
		DefaultModel:         defaultModels[0],
		Models:               append([]string(nil), defaultModels...),
		NotificationsEnabled: true,
		SearchDebounceMS:     DefaultSearchDebounceMS,
	}
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills zero values left by a sparse config file.
func (c *Config) ensureInitialized() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if len(c.Models) == 0 {
		c.Models = append([]string(nil), defaultModels...)
	}
	if c.DefaultModel == "" {
		c.DefaultModel = c.Models[0]
	}
	if c.SearchDebounceMS <= 0 {
		c.SearchDebounceMS = DefaultSearchDebounceMS
	}
}

// Validate checks the loaded config for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid("server_url must be an absolute http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid("server_url must use http or https")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.filePath
	if path == "" {
		p, err := configPath()
		if err != nil {
			return err
		}
		path = p
		c.filePath = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// GetDefaultModel returns the configured default model.
func (c *Config) GetDefaultModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DefaultModel
}

// SetDefaultModel records the user's model choice for future runs.
func (c *Config) SetDefaultModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DefaultModel = model
}

// GetModels returns the model selector contents.
func (c *Config) GetModels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.Models...)
}

// SearchDebounce returns the search quiet period as a duration.
func (c *Config) SearchDebounce() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}
