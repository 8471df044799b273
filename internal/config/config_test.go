package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BookDir != "book" {
		t.Errorf("expected default book_dir %q, got %q", "book", cfg.BookDir)
	}
	if !cfg.InPlace() {
		t.Error("expected in-place mode by default")
	}
	if cfg.Locale != "zh-TW" {
		t.Errorf("expected default locale %q, got %q", "zh-TW", cfg.Locale)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("expected default max_concurrency 4, got %d", cfg.MaxConcurrency)
	}
	if !cfg.SkipAnnotated {
		t.Error("expected skip_annotated to default to true")
	}
	if cfg.HistoryDB != ".ferrisdoc/history.db" {
		t.Errorf("expected default history_db, got %q", cfg.HistoryDB)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
}

func TestDefaultConfigDoesNotShareSlices(t *testing.T) {
	a := DefaultConfig()
	a.Exclude[0] = "changed"
	if DefaultConfig().Exclude[0] == "changed" {
		t.Error("DefaultConfig shares its exclude slice")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ferrisdoc.yml")

	original := DefaultConfig()
	original.BookDir = "site/book"
	original.OutputDir = "site/annotated"
	original.Locale = "en"
	original.Include = []string{"ch*.html", "appendix-*.html"}
	original.SkipAnnotated = false
	original.Server.Port = 8081

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.BookDir != original.BookDir {
		t.Errorf("book_dir: got %q, want %q", loaded.BookDir, original.BookDir)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.Locale != original.Locale {
		t.Errorf("locale: got %q, want %q", loaded.Locale, original.Locale)
	}
	if loaded.SkipAnnotated {
		t.Error("skip_annotated: got true, want false")
	}
	if loaded.Server.Port != 8081 {
		t.Errorf("server.port: got %d, want 8081", loaded.Server.Port)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.BookDir != "book" {
		t.Errorf("expected default book_dir, got %q", cfg.BookDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("FERRISDOC_LOCALE", "en")
	t.Setenv("FERRISDOC_SERVER__PORT", "9090")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Locale != "en" {
		t.Errorf("env override failed: got %q, want %q", loaded.Locale, "en")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("nested env override failed: got %d, want 9090", loaded.Server.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("book_dir: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty book dir", func(c *Config) { c.BookDir = "" }},
		{"output equals book", func(c *Config) { c.BookDir = "book"; c.OutputDir = "./book/" }},
		{"output inside book", func(c *Config) { c.BookDir = "book"; c.OutputDir = "book/out" }},
		{"bad locale", func(c *Config) { c.Locale = "!!" }},
		{"no include", func(c *Config) { c.Include = nil }},
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestValidateOutputBesideBook(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BookDir = "book"
	cfg.OutputDir = "book-annotated"
	if err := cfg.Validate(); err != nil {
		t.Errorf("sibling output dir should be valid, got: %v", err)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.html", []string{"**/*.html"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
