// Package daemonrun wires the daemon process runtime: logging, settings
// store, alert fan-out, page monitor, and the IPC server.
package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"lookout/internal/audio"
	"lookout/internal/badge"
	"lookout/internal/browser"
	"lookout/internal/config"
	"lookout/internal/daemon"
	"lookout/internal/ipc"
	"lookout/internal/logging"
	"lookout/internal/monitor"
	"lookout/internal/notify"
	"lookout/internal/preflight"
	"lookout/internal/store"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the lookout daemon runtime loop and blocks until the process
// receives SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("lookout-%s.log", runID))

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	sessionID := uuid.NewString()
	logger = logger.With(logging.String(logging.FieldSessionID, sessionID))

	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update lookout.log link: %v\n", err)
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "lookout.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	logPreflight(signalCtx, logger, cfg)

	settings, created, err := store.Open(cfg)
	if err != nil {
		logger.Error("open settings store", logging.Error(err))
		return err
	}
	defer settings.Close()
	if created {
		logger.Info("fresh settings database created",
			logging.String(logging.FieldEventType, "fresh_install"),
			logging.String("path", settings.Path()))
	}

	player, err := audio.NewProcessManager(cfg.Audio.Player, logger)
	if err != nil {
		return fmt.Errorf("create audio manager: %w", err)
	}
	defer player.Close()

	renderer := badge.NewFileRenderer(cfg.BadgePath())
	counter, err := badge.NewCounter(settings, renderer, badge.DefaultWindow, logger)
	if err != nil {
		return fmt.Errorf("create badge counter: %w", err)
	}

	alerter := notify.NewAlerter(cfg)
	dispatcher, err := notify.NewDispatcher(settings, alerter, player, counter, cfg.Audio.SoundDir, logger)
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}

	mon, err := monitor.New(cfg, settings, dispatcher, logger)
	if err != nil {
		return fmt.Errorf("create monitor: %w", err)
	}

	opener, err := browser.NewOpener(cfg.Browser.Opener)
	if err != nil {
		return fmt.Errorf("create browser opener: %w", err)
	}

	d, err := daemon.New(cfg, settings, dispatcher, counter, mon, opener, created, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Warn("daemon start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_start_failed"),
			logging.String(logging.FieldErrorHint, "check configuration and settings database access"),
		)
	}

	<-signalCtx.Done()
	logger.Info("lookout daemon shutting down")
	return nil
}

func logPreflight(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	for _, result := range preflight.RunAll(ctx, cfg) {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
			continue
		}
		logger.Warn("preflight check failed",
			logging.String(logging.FieldEventType, "preflight_failed"),
			logging.String("check", result.Name),
			logging.String("detail", result.Detail))
	}
	for _, status := range preflight.CheckSystemDeps(cfg) {
		if status.Available {
			continue
		}
		logger.Warn("external dependency unavailable",
			logging.String(logging.FieldEventType, "dependency_missing"),
			logging.String("dependency", status.Name),
			logging.String("detail", status.Detail))
	}
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "lookout.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
