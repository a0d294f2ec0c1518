package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"lookout/internal/deps"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Lookout", statusError, "Not running", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Lookout:", "[ERROR] Not running")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Lookout", statusOK, "Running", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "Audio player", Available: true, Command: "lookout-player"},
		{Name: "Browser opener", Available: false, Optional: true, Detail: `binary "xdg-open" not found`},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Summary") || !strings.Contains(lines[0], "1/2 available") {
		t.Fatalf("expected summary line first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] Ready (command: lookout-player)") {
		t.Fatalf("expected ready detail, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[WARN]") || !strings.Contains(lines[2], "xdg-open") {
		t.Fatalf("expected warn detail, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing dependencies") {
		t.Fatalf("expected missing summary, got %q", lines[3])
	}
}

func TestSettingLabel(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{key: "audioActive", want: "Audio Active"},
		{key: "volumePercent", want: "Volume Percent"},
		{key: "counter", want: "Counter"},
		{key: "openSourcePage", want: "Open Source Page"},
	}
	for _, tc := range cases {
		if got := settingLabel(tc.key); got != tc.want {
			t.Fatalf("settingLabel(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
