package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.factory-planner/config.json
type UserConfig struct {
	// DefaultDataPath is the game-data file used when --data is not given
	DefaultDataPath string `json:"default_data_path,omitempty"`

	// DefaultPlanPath is the plan file used when --plan is not given
	DefaultPlanPath string `json:"default_plan_path,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for the file in the home directory
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".factory-planner"))
}

// NewUserConfigHandlerAt creates a handler for config.json inside configDir
func NewUserConfigHandlerAt(configDir string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(configDir, "config.json"),
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultDataPath stores the default game-data file
func (h *UserConfigHandler) SetDefaultDataPath(path string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultDataPath = path
	return h.Save(config)
}

// SetDefaultPlanPath stores the default plan file
func (h *UserConfigHandler) SetDefaultPlanPath(path string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultPlanPath = path
	return h.Save(config)
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
