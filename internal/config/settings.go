package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/HueyNemud/grabs/internal/untile"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir string `json:"output_dir"`

	// Download settings
	ZoomLevel           int  `json:"zoom_level"` // 0 selects the image's max zoom
	Recursive           bool `json:"recursive"`
	MetadataOnly        bool `json:"metadata_only"`
	MaxConcurrentImages int  `json:"max_concurrent_images"`
	MaxTileWorkers      int  `json:"max_tile_workers"`
	FetchTimeoutSeconds int  `json:"fetch_timeout_seconds"`

	// Network settings
	UserAgent string `json:"user_agent"`

	// Logging settings
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:           ".",
		ZoomLevel:           0,
		Recursive:           false,
		MetadataOnly:        false,
		MaxConcurrentImages: 1,
		MaxTileWorkers:      untile.DefaultMaxWorkers,
		FetchTimeoutSeconds: int(untile.DefaultFetchTimeout / time.Second),
		Verbose:             false,
	}
}

// Load reads settings from a JSON file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FetchTimeout returns the per-build tile fetch deadline as a duration.
func (s *Settings) FetchTimeout() time.Duration {
	if s.FetchTimeoutSeconds <= 0 {
		return untile.DefaultFetchTimeout
	}
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}
