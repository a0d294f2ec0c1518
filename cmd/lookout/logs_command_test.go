package main

import (
	"os"
	"testing"
)

func TestCLILogsShowsTrailingLines(t *testing.T) {
	env := setupCLITestEnv(t)

	logPath := env.daemon.LogPath()
	content := "first line\nsecond line\nthird line\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write log file: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "--limit", "2"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "second line")
	requireContains(t, out, "third line")
	if len(out) > 0 && out[0] == 'f' {
		t.Fatalf("expected first line to be trimmed by limit, got %q", out)
	}
}

func TestCLILogsMissingFileIsEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"logs"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output for missing log file, got %q", out)
	}
}
