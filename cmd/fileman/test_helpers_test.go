package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	sourceDir  string
	targetDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		sourceDir:  filepath.Join(base, "source"),
		targetDir:  filepath.Join(base, "target"),
	}
	if err := os.MkdirAll(env.sourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	writeCLIConfig(t, env.configPath, base)
	return env
}

func writeCLIConfig(t *testing.T, path, base string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
log_dir = %q
history_db = %q

[organize]
scheme = "year/month"
on_conflict = "rename"

[history]
enabled = true
retention_days = 0

[logging]
format = "console"
level = "error"
`,
		filepath.Join(base, "logs"),
		filepath.Join(base, "history.db"),
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
