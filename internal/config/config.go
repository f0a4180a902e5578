package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "github.com/zhubert/askdesk/internal/errors"
	"github.com/zhubert/askdesk/internal/session"
)

// DefaultAPIBase is the backend address used when none is configured.
const DefaultAPIBase = "http://localhost:5050"

// Config holds the application configuration
type Config struct {
	APIBase              string `json:"api_base,omitempty"`              // Backend base URL (e.g., "http://localhost:5050")
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	Difficulty           string `json:"difficulty,omitempty"`            // Default difficulty for new chats
	Basic                bool   `json:"basic,omitempty"`                 // Basic mode: no history extras, no difficulty selector
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications when an answer arrives

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".askdesk"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, apperrors.ConfigLoadFailed("~/.askdesk/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, apperrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.ConfigLoadFailed(path, err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDefaults fills unset fields. Only called from LoadFrom before the
// Config is shared.
func (c *Config) ensureDefaults() {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	c.APIBase = strings.TrimRight(c.APIBase, "/")
	if c.Difficulty == "" {
		c.Difficulty = "intermediate"
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.APIBase != "" {
		if err := ValidateAPIBase(c.APIBase); err != nil {
			return err
		}
	}
	if c.Difficulty != "" {
		if _, err := session.ParseDifficulty(c.Difficulty); err != nil {
			return apperrors.ConfigInvalid(fmt.Sprintf("unknown difficulty: %s", c.Difficulty))
		}
	}
	return nil
}

// ValidateAPIBase checks that raw is an absolute http or https URL.
func ValidateAPIBase(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return apperrors.ConfigInvalid(fmt.Sprintf("invalid api_base %q: %v", raw, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.ConfigInvalid(fmt.Sprintf("api_base must be http or https: %s", raw))
	}
	if u.Host == "" {
		return apperrors.ConfigInvalid(fmt.Sprintf("api_base has no host: %s", raw))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return apperrors.ConfigSaveFailed("~/.askdesk/config.json", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return apperrors.ConfigSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.ConfigSaveFailed(path, err)
	}
	return nil
}

// FilePath returns where Save writes the config.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath changes where Save writes the config.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetAPIBase returns the backend base URL
func (c *Config) GetAPIBase() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.APIBase == "" {
		return DefaultAPIBase
	}
	return c.APIBase
}

// SetAPIBase sets the backend base URL. Trailing slashes are dropped.
func (c *Config) SetAPIBase(base string) error {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if err := ValidateAPIBase(base); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIBase = base
	return nil
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetDifficulty returns the default difficulty name
func (c *Config) GetDifficulty() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Difficulty
}

// SetDifficulty sets the default difficulty name, stored in canonical form
func (c *Config) SetDifficulty(difficulty string) error {
	d, err := session.ParseDifficulty(difficulty)
	if err != nil {
		return apperrors.ConfigInvalid(fmt.Sprintf("unknown difficulty: %s", difficulty))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Difficulty = string(d)
	return nil
}

// GetBasic returns whether basic mode is enabled
func (c *Config) GetBasic() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Basic
}

// SetBasic sets whether basic mode is enabled
func (c *Config) SetBasic(basic bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Basic = basic
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}
