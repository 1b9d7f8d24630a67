package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fileman/internal/services"
	"fileman/internal/testsupport"
)

func TestCLICount(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.sourceDir, "a.txt"), 1)
	testsupport.WriteFile(t, filepath.Join(env.sourceDir, "b.txt"), 1)
	testsupport.WriteFile(t, filepath.Join(env.sourceDir, "nested", "c.txt"), 1)

	out, _, err := runCLI(t, env.configPath, "count", env.sourceDir)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("expected flat count 2, got %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "count", "--recursive", env.sourceDir)
	if err != nil {
		t.Fatalf("count --recursive: %v", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("expected recursive count 3, got %q", out)
	}
}

func TestCLICountMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "count", filepath.Join(env.baseDir, "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCLIVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "fileman")
}

func TestCLIUnknownCommand(t *testing.T) {
	if _, _, err := runCLI(t, "", "frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestExitCodeClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing source", services.Wrap(services.ErrNotFound, "organizer", "validate source", "gone", nil), 2},
		{"bad configuration", services.Wrap(services.ErrConfiguration, "config", "load", "bad value", nil), 2},
		{"partial move failure", errors.New("2 of 5 files could not be moved"), 1},
		{"per-file permission", services.Wrap(services.ErrPermission, "organizer", "move", "denied", nil), 1},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("%s: exit code %d, want %d", tc.name, got, tc.want)
		}
	}
}
