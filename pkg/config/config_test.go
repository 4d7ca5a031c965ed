package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got error: %v", err)
	}

	if cfg.Site.BaseURL != "https://grilld.com.au" {
		t.Errorf("Unexpected default base URL: %q", cfg.Site.BaseURL)
	}
	if cfg.Scrape.Workers != 10 {
		t.Errorf("Expected 10 default workers, got %d", cfg.Scrape.Workers)
	}
	if cfg.Output.Path != "stores.json" {
		t.Errorf("Unexpected default output path: %q", cfg.Output.Path)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `site:
  base_url: https://example.org
scrape:
  workers: 3
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Site.BaseURL != "https://example.org" {
		t.Errorf("Expected override, got %q", cfg.Site.BaseURL)
	}
	if cfg.Scrape.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", cfg.Scrape.Workers)
	}
	// untouched keys keep their defaults
	if cfg.Site.LinkSubstring != "restaurants/" {
		t.Errorf("Expected default link substring, got %q", cfg.Site.LinkSubstring)
	}
	if cfg.Output.Path != "stores.json" {
		t.Errorf("Expected default output path, got %q", cfg.Output.Path)
	}
}
