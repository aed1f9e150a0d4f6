package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parleychat/parley/internal/errors"
)

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want default %q", cfg.ServerURL, DefaultServerURL)
	}
	if cfg.DefaultModel != "llama3-8b-8192" {
		t.Errorf("DefaultModel = %q, want first model", cfg.DefaultModel)
	}
	if cfg.SearchDebounceMS != DefaultSearchDebounceMS {
		t.Errorf("SearchDebounceMS = %d, want %d", cfg.SearchDebounceMS, DefaultSearchDebounceMS)
	}
}

func TestLoadFrom_SparseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server_url":"https://chat.example.com"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.ServerURL != "https://chat.example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if len(cfg.Models) == 0 {
		t.Error("Models should be backfilled with defaults")
	}
	if cfg.DefaultModel == "" {
		t.Error("DefaultModel should be backfilled")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", errors.GetKind(err))
	}
}

func TestValidate_BadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"relative", "chat.example.com"},
		{"wrong scheme", "ftp://chat.example.com"},
		{"empty host", "http://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ServerURL = tt.url
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate(%q) should fail", tt.url)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	cfg.SetDefaultModel("mixtral-8x7b-32768")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.GetDefaultModel() != "mixtral-8x7b-32768" {
		t.Errorf("DefaultModel = %q after reload", reloaded.GetDefaultModel())
	}
}
