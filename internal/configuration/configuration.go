package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"hiwar/internal/file"
)

var defaultConfig = Config{
	APIHost:        "http://127.0.0.1:8000/api",
	RequestTimeout: 60,
	Language:       "en",
	SessionPath:    "~/.hiwar/session.db",

	Chat: &ChatConfig{
		DefaultModel:     "GPT",
		DefaultProvider:  "GPT",
		PageSize:         15,
		TypingIntervalMs: 20,
	},
}

// Config holds configuration for the hiwar client.
type Config struct {
	// Base URL of the backend API.
	APIHost string `json:"api_host"`
	// Request timeout, in seconds.
	RequestTimeout int `json:"request_timeout"`
	// Display language. "en" or "ar".
	Language string `json:"language"`
	// Path of the local session database.
	SessionPath string `json:"session_path"`

	Chat *ChatConfig `json:"chat"`
}

// ChatConfig holds configuration for chat sessions.
type ChatConfig struct {
	// The model used when none is specified.
	DefaultModel string `json:"default_model"`
	// The provider used when none is specified.
	DefaultProvider string `json:"default_provider"`
	// Page size for conversation and message listing.
	PageSize int `json:"page_size"`
	// Interval between typing reveal ticks, in milliseconds.
	TypingIntervalMs int `json:"typing_interval_ms"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedSessionPath, err := file.ExpandPath(config.SessionPath)
	if err != nil {
		return nil, errors.Wrap(err, "expanding session path")
	}
	config.SessionPath = expandedSessionPath
	if err := file.CreateDirectoryIfNotExist(filepath.Dir(config.SessionPath)); err != nil {
		return nil, errors.Wrap(err, "creating session directory")
	}
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
