package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.OutputDir != "." {
		t.Errorf("OutputDir = %q", s.OutputDir)
	}
	if s.ZoomLevel != 0 {
		t.Errorf("ZoomLevel = %d, want 0 (image max)", s.ZoomLevel)
	}
	if s.MaxTileWorkers != 10 {
		t.Errorf("MaxTileWorkers = %d, want 10", s.MaxTileWorkers)
	}
	if s.FetchTimeout() != 20*time.Second {
		t.Errorf("FetchTimeout = %v, want 20s", s.FetchTimeout())
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.MaxConcurrentImages != DefaultSettings().MaxConcurrentImages {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")

	s := DefaultSettings()
	s.OutputDir = "/tmp/out"
	s.ZoomLevel = 12
	s.Recursive = true
	s.FetchTimeoutSeconds = 5

	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutputDir != "/tmp/out" || loaded.ZoomLevel != 12 || !loaded.Recursive {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.FetchTimeout() != 5*time.Second {
		t.Errorf("FetchTimeout = %v, want 5s", loaded.FetchTimeout())
	}
}

func TestFetchTimeoutGuardsNonPositive(t *testing.T) {
	s := DefaultSettings()
	s.FetchTimeoutSeconds = 0
	if s.FetchTimeout() != 20*time.Second {
		t.Errorf("FetchTimeout = %v, want default", s.FetchTimeout())
	}
}
