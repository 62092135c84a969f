// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultFetchTimeout bounds remote dataset downloads.
	defaultFetchTimeout = 30 * time.Second
	defaultDataset      = "merged_data.csv"
	defaultStyle        = "classic"
	defaultListenAddr   = ":8080"
	defaultSnapshotDB   = "salarydash.db"
	defaultLogFile      = "salarydash.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Dataset              string `json:"dataset,omitempty"`
	Style                string `json:"style,omitempty"`
	StyleFile            string `json:"styleFile,omitempty"`
	DefaultCountry       string `json:"defaultCountry,omitempty"`
	DefaultQualification string `json:"defaultQualification,omitempty"`
	DefaultMeasure       string `json:"defaultMeasure,omitempty"`
	LogFile              string `json:"logFile,omitempty"`
	ListenAddr           string `json:"listenAddr,omitempty"`
	SnapshotDB           string `json:"snapshotDB,omitempty"`
	FetchTimeoutSeconds  int    `json:"fetchTimeout,omitempty" mapstructure:"fetchTimeout"`
	Debug                bool   `json:"debug"`
	ConfigPath           string `json:"-"`
}

var configSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"dataset":              map[string]any{"type": "string"},
		"style":                map[string]any{"type": "string"},
		"styleFile":            map[string]any{"type": "string"},
		"defaultCountry":       map[string]any{"type": "string"},
		"defaultQualification": map[string]any{"type": "string"},
		"defaultMeasure":       map[string]any{"type": "string"},
		"logFile":              map[string]any{"type": "string"},
		"listenAddr":           map[string]any{"type": "string"},
		"snapshotDB":           map[string]any{"type": "string"},
		"fetchTimeout":         map[string]any{"type": "integer", "minimum": 0},
		"debug":                map[string]any{"type": "boolean"},
	},
	"additionalProperties": false,
}

// DatasetPath returns the dataset path or URL, applying the default if not set.
func (c Config) DatasetPath() string {
	if v := strings.TrimSpace(c.Dataset); v != "" {
		return v
	}
	return defaultDataset
}

// StyleName returns the style preset name, applying the default if not set.
func (c Config) StyleName() string {
	if v := strings.TrimSpace(c.Style); v != "" {
		return v
	}
	return defaultStyle
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	if v := strings.TrimSpace(c.ListenAddr); v != "" {
		return v
	}
	return defaultListenAddr
}

// SnapshotDBPath returns the snapshot database path.
func (c Config) SnapshotDBPath() string {
	if v := strings.TrimSpace(c.SnapshotDB); v != "" {
		return v
	}
	return defaultSnapshotDB
}

// FetchTimeout returns the timeout for remote dataset downloads, falling back to the default if not specified.
func (c Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return defaultFetchTimeout
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q): %w", DefaultConfigPath, legacyConfigPath, os.ErrNotExist)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, os.ErrNotExist)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// Validate checks a raw configuration document against the config schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(configSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("config schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("config failed validation: %s", strings.Join(details, "; "))
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(data); err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}
