package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fileman/internal/config"
)

func TestLoadWithoutFileUsesDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "fileman", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	wantDB := filepath.Join(tempHome, ".local", "share", "fileman", "history.db")
	if cfg.Paths.HistoryDB != wantDB {
		t.Fatalf("unexpected history db: got %q want %q", cfg.Paths.HistoryDB, wantDB)
	}
	if cfg.Organize.Scheme != config.SchemeYearMonth {
		t.Fatalf("unexpected default scheme: %q", cfg.Organize.Scheme)
	}
	if cfg.Organize.OnConflict != config.ConflictRename {
		t.Fatalf("unexpected default conflict policy: %q", cfg.Organize.OnConflict)
	}
	if !cfg.Organize.VerifyCopies {
		t.Fatal("expected verify_copies enabled by default")
	}
	if cfg.Organize.IncludeHidden {
		t.Fatal("expected include_hidden disabled by default")
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.LogDir); err != nil {
		t.Fatalf("log dir missing after EnsureDirectories: %v", err)
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[organize]
scheme = "year/month/day"
on_conflict = "skip"
max_depth = 2
include_hidden = true

[history]
enabled = false

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Organize.Scheme != config.SchemeYearMonthDay {
		t.Fatalf("unexpected scheme: %q", cfg.Organize.Scheme)
	}
	if cfg.Organize.OnConflict != config.ConflictSkip {
		t.Fatalf("unexpected conflict policy: %q", cfg.Organize.OnConflict)
	}
	if cfg.Organize.MaxDepth != 2 {
		t.Fatalf("unexpected max depth: %d", cfg.Organize.MaxDepth)
	}
	if !cfg.Organize.IncludeHidden {
		t.Fatal("expected include_hidden true")
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging settings: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownScheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[organize]\nscheme = \"week\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown scheme")
	}
	if !strings.Contains(err.Error(), "organize.scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestLoadRejectsUnknownConflictPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[organize]\non_conflict = \"ask\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown conflict policy")
	}
	if !strings.Contains(err.Error(), "organize.on_conflict") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestLoadRejectsUnknownMonthCase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[organize]\nmonth_case = \"camel\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown month case")
	}
	if !strings.Contains(err.Error(), "organize.month_case") {
		t.Fatalf("expected month case error, got %v", err)
	}
}

func TestNormalizeLowercasesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[organize]
scheme = "Year/Month"
on_conflict = "RENAME"
max_depth = -3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Organize.Scheme != config.SchemeYearMonth {
		t.Fatalf("expected lowercased scheme, got %q", cfg.Organize.Scheme)
	}
	if cfg.Organize.OnConflict != config.ConflictRename {
		t.Fatalf("expected lowercased policy, got %q", cfg.Organize.OnConflict)
	}
	if cfg.Organize.MaxDepth != 0 {
		t.Fatalf("expected negative depth clamped to 0, got %d", cfg.Organize.MaxDepth)
	}
	if cfg.Organize.MonthCase != config.MonthCaseTitle {
		t.Fatalf("expected default month case, got %q", cfg.Organize.MonthCase)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Organize.Scheme != config.SchemeYearMonth {
		t.Fatalf("sample config changed defaults: %q", cfg.Organize.Scheme)
	}
}

func TestExpandPathHome(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	got, err := config.ExpandPath("~/data")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(tempHome, "data") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
