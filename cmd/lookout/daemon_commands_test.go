package main

import (
	"testing"
)

func TestCLIStatusRendersSections(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "System Status")
	requireContains(t, out, "Lookout")
	requireContains(t, out, "Watched page")
	requireContains(t, out, "Reachable")
	requireContains(t, out, "Dependencies")
	requireContains(t, out, "State directory")
	requireContains(t, out, "Settings")
	requireContains(t, out, "Audio File")
	requireContains(t, out, "alert1.mp3")
}

func TestCLISendClearBadge(t *testing.T) {
	env := setupCLITestEnv(t)

	if err := env.renderer.Set("3"); err != nil {
		t.Fatalf("seed badge: %v", err)
	}

	out, _, err := runCLI(t, []string{"send", "clear-badge"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("send clear-badge: %v", err)
	}
	requireContains(t, out, "Message handled")

	text, err := env.renderer.Text()
	if err != nil {
		t.Fatalf("read badge: %v", err)
	}
	if text != "" {
		t.Fatalf("expected cleared badge, got %q", text)
	}
}

func TestCLISendIgnoresOtherTargets(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"send", "clear-badge", "--target", "popup"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	requireContains(t, out, "Message ignored")
}

func TestCLISendRejectsInvalidJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"send", "show-notification", "--data", "{not json"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected error for invalid JSON payload")
	}
}

func TestCLITestNotifyWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"test-notify"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "ntfy topic not configured")
}
