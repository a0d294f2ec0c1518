package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lookout/internal/badge"
	"lookout/internal/config"
	"lookout/internal/daemon"
	"lookout/internal/ipc"
	"lookout/internal/logging"
	"lookout/internal/monitor"
	"lookout/internal/notify"
	"lookout/internal/store"
	"lookout/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	store      *store.Store
	daemon     *daemon.Daemon
	server     *ipc.Server
	renderer   *badge.FileRenderer
	socketPath string
	configPath string
	cancel     context.CancelFunc
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>Inbox</title></head></html>"))
	}))
	t.Cleanup(page.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithPageURL(page.URL))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	configPath := filepath.Join(homeDir, ".config", "lookout", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	st := testsupport.MustOpenStore(t, cfg)
	if err := st.Seed(context.Background(), store.Defaults(cfg.Watch.EmptyStateLabel)); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	logger := logging.NewNop()
	renderer := badge.NewFileRenderer(cfg.BadgePath())
	counter, err := badge.NewCounter(st, renderer, 0, logger)
	if err != nil {
		t.Fatalf("badge.NewCounter: %v", err)
	}
	dispatcher, err := notify.NewDispatcher(st, notify.NewAlerter(cfg), nil, counter, cfg.Audio.SoundDir, logger)
	if err != nil {
		t.Fatalf("notify.NewDispatcher: %v", err)
	}
	mon, err := monitor.New(cfg, st, dispatcher, logger)
	if err != nil {
		t.Fatalf("monitor.New: %v", err)
	}
	d, err := daemon.New(cfg, st, dispatcher, counter, mon, nil, false, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	socketPath := cfg.SocketPath()
	srv, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		cancel()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	env := &cliTestEnv{
		cfg:        cfg,
		store:      st,
		daemon:     d,
		server:     srv,
		renderer:   renderer,
		socketPath: socketPath,
		configPath: configPath,
		cancel:     cancel,
	}

	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Close()
	})

	return env
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstate_dir = %q\nlog_dir = %q\n\n[watch]\npage_url = %q\nwelcome_url = %q\nempty_state_label = %q\n\n[audio]\nsound_dir = %q\n",
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.Watch.PageURL,
		cfg.Watch.WelcomeURL,
		cfg.Watch.EmptyStateLabel,
		cfg.Audio.SoundDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
