package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"filedeck/internal/domain"
	"filedeck/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int        `json:"version"`
	ServerURL  string     `json:"server_url"`
	Password   string     `json:"password,omitempty"`
	PageSize   int        `json:"page_size"`
	UISettings UISettings `json:"ui"`
}

// UISettings holds persisted UI preferences. These survive restarts; the
// navigation state itself does not.
type UISettings struct {
	SidebarWidth int             `json:"sidebar_width"`
	PreviewWidth int             `json:"preview_width"`
	PreviewOpen  bool            `json:"preview_open"`
	ViewMode     domain.ViewMode `json:"view_mode"`
	Theme        string          `json:"theme"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	// Create filedeck config directory
	filedeckDir := filepath.Join(configDir, "filedeck")
	os.MkdirAll(filedeckDir, 0755)

	return &configService{
		filePath: filepath.Join(filedeckDir, "config.json"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{ServerURL: cfg.ServerURL})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{ServerURL: cfg.ServerURL})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8080"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	if cfg.UISettings.SidebarWidth <= 0 {
		cfg.UISettings.SidebarWidth = 28
	}
	if cfg.UISettings.PreviewWidth <= 0 {
		cfg.UISettings.PreviewWidth = 40
	}
	if cfg.UISettings.ViewMode == "" {
		cfg.UISettings.ViewMode = domain.ViewList
	}
	if cfg.UISettings.Theme == "" {
		cfg.UISettings.Theme = "default"
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	applyDefaults(cfg)
	return cfg
}
