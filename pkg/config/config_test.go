package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefault tests the default configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
	if cfg.Repo.SyncDir != ".sessync/sessions" {
		t.Errorf("SyncDir = %q, want %q", cfg.Repo.SyncDir, ".sessync/sessions")
	}
	if len(cfg.Repo.DomainSuffixes) == 0 {
		t.Error("DomainSuffixes should not be empty by default")
	}
}

// TestValidate tests configuration validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"EmptySyncDir", func(c *Config) { c.Repo.SyncDir = "" }},
		{"NegativeBandwidth", func(c *Config) { c.Performance.BandwidthLimit = -1 }},
		{"BadOutputFormat", func(c *Config) { c.Output.Format = "xml" }},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "yaml" }},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

// TestSaveAndLoad tests YAML round-tripping through a file
func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg := Default()
	cfg.Source.Root = "/custom/sessions"
	cfg.Repo.DomainSuffixes = []string{".com", ".example"}
	cfg.Performance.BandwidthLimit = 1024

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if loaded.Source.Root != "/custom/sessions" {
		t.Errorf("Source.Root = %q, want %q", loaded.Source.Root, "/custom/sessions")
	}
	if len(loaded.Repo.DomainSuffixes) != 2 || loaded.Repo.DomainSuffixes[1] != ".example" {
		t.Errorf("DomainSuffixes = %v, want [.com .example]", loaded.Repo.DomainSuffixes)
	}
	if loaded.Performance.BandwidthLimit != 1024 {
		t.Errorf("BandwidthLimit = %d, want 1024", loaded.Performance.BandwidthLimit)
	}
}

// TestLoadFromFileErrors tests failure modes
func TestLoadFromFileErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("output: [unterminated"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for malformed YAML")
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		if err := os.WriteFile(path, []byte("output:\n  format: xml\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should reject invalid values")
		}
	})
}
