package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScanFiltersModelFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"coin.model",
		"mixture.MODEL", // case-insensitive
		"notes.txt",
		"weights.bin",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(""), 0o644); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
	}
	s := NewProgramScanner()
	models, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	for _, m := range models {
		if !strings.HasSuffix(strings.ToLower(m.ID), ".model") {
			t.Fatalf("id not a model file: %s", m.ID)
		}
		if m.Source != "program" {
			t.Fatalf("source = %q, want program", m.Source)
		}
		if !filepath.IsAbs(m.Path) {
			t.Fatalf("path not absolute: %s", m.Path)
		}
	}
}

func TestScanNameStripsExtension(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "coin.model"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	models, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 1 || models[0].Name != "coin" {
		t.Fatalf("unexpected: %+v", models)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestScanExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "models"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, "models", "coin.model"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	models, err := LoadDir("~/models")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(models))
	}
}
