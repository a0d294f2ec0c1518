package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"lookout/internal/browser"
	"lookout/internal/config"
	"lookout/internal/logging"
	"lookout/internal/store"
)

const defaultWelcomeDelay = time.Second

type pageMonitor interface {
	Start(ctx context.Context) error
	Stop()
}

type messageDispatcher interface {
	PlaySound(ctx context.Context) error
	ShowNotification(ctx context.Context, title, message string) error
	TestNotification(ctx context.Context) error
}

type badgeClearer interface {
	Clear(ctx context.Context) error
}

// Daemon coordinates the background services and enforces single-instance
// execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *store.Store
	dispatcher messageDispatcher
	badge      badgeClearer
	monitor    pageMonitor
	opener     browser.Opener
	logPath    string

	freshInstall bool
	welcomeDelay time.Duration

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running        bool
	PID            int
	PageURL        string
	SettingsDBPath string
	LockFilePath   string
	BadgePath      string
	Settings       map[string]string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, dispatcher messageDispatcher, badge badgeClearer, mon pageMonitor, opener browser.Opener, freshInstall bool, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || dispatcher == nil || mon == nil {
		return nil, errors.New("daemon requires config, store, dispatcher, and monitor")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:          cfg,
		logger:       logging.WithComponent(logger, "daemon"),
		store:        st,
		dispatcher:   dispatcher,
		badge:        badge,
		monitor:      mon,
		opener:       opener,
		logPath:      filepath.Join(cfg.Paths.LogDir, "lookout.log"),
		freshInstall: freshInstall,
		welcomeDelay: defaultWelcomeDelay,
		lockPath:     lockPath,
		lock:         flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, performs install and startup actions,
// and launches the page monitor.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another lookout daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	if d.freshInstall {
		if err := d.seedAndWelcome(d.ctx); err != nil {
			_ = d.lock.Unlock()
			d.cancel()
			d.ctx = nil
			d.cancel = nil
			return err
		}
	}

	d.reopenWatchedPage(d.ctx)

	if err := d.monitor.Start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start monitor: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("lookout daemon started", logging.String("lock", d.lockPath))
	return nil
}

// seedAndWelcome writes default settings and schedules the welcome page
// open. The open fires after a fixed delay so the rest of startup settles
// first.
func (d *Daemon) seedAndWelcome(ctx context.Context) error {
	if err := d.store.Seed(ctx, store.Defaults(d.cfg.Watch.EmptyStateLabel)); err != nil {
		return fmt.Errorf("seed default settings: %w", err)
	}
	d.logger.Info("default settings seeded",
		logging.String(logging.FieldEventType, "settings_seeded"))

	welcomeURL := strings.TrimSpace(d.cfg.Watch.WelcomeURL)
	if welcomeURL == "" || d.opener == nil {
		return nil
	}
	time.AfterFunc(d.welcomeDelay, func() {
		if ctx.Err() != nil {
			return
		}
		if err := d.opener.Open(ctx, welcomeURL); err != nil {
			d.logger.Warn("welcome page open failed", logging.Error(err))
			return
		}
		d.logger.Info("welcome page opened", logging.String("url", welcomeURL))
	})
	return nil
}

// reopenWatchedPage opens the watched page on startup when the user has
// opted in via the openSourcePage setting. The setting is unseeded, so a
// missing value reads as false.
func (d *Daemon) reopenWatchedPage(ctx context.Context) {
	if d.opener == nil {
		return
	}
	open, err := d.store.GetBool(ctx, store.KeyOpenSourcePage, false)
	if err != nil {
		d.logger.Warn("read openSourcePage setting failed", logging.Error(err))
		return
	}
	if !open {
		return
	}
	go func() {
		if err := d.opener.Open(ctx, d.cfg.Watch.PageURL); err != nil {
			d.logger.Warn("watched page open failed", logging.Error(err))
			return
		}
		d.logger.Info("watched page reopened", logging.String("url", d.cfg.Watch.PageURL))
	}()
}

// Stop stops the page monitor and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.monitor.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("lookout daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// SettingsAll returns every persisted setting.
func (d *Daemon) SettingsAll(ctx context.Context) (map[string]string, error) {
	return d.store.All(ctx)
}

// SettingsGet returns the stored value for a known key.
func (d *Daemon) SettingsGet(ctx context.Context, key string) (string, error) {
	if !knownKey(key) {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return d.store.GetString(ctx, key, "")
}

// SettingsSet stores a value under a known key.
func (d *Daemon) SettingsSet(ctx context.Context, key, value string) error {
	if !knownKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := d.store.SetString(ctx, key, value); err != nil {
		return err
	}
	d.logger.Info("setting updated",
		logging.String(logging.FieldEventType, "setting_updated"),
		logging.String("key", key))
	return nil
}

func knownKey(key string) bool {
	for _, known := range store.Keys {
		if key == known {
			return true
		}
	}
	return false
}

// ClearBadge removes the badge immediately.
func (d *Daemon) ClearBadge(ctx context.Context) error {
	if d.badge == nil {
		return nil
	}
	return d.badge.Clear(ctx)
}

// TestNotification triggers a test notification using the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.dispatcher.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	settings, err := d.store.All(ctx)
	if err != nil {
		d.logger.Warn("read settings for status failed", logging.Error(err))
		settings = nil
	}
	return Status{
		Running:        d.running.Load(),
		PID:            os.Getpid(),
		PageURL:        d.cfg.Watch.PageURL,
		SettingsDBPath: d.cfg.DatabasePath(),
		LockFilePath:   d.lockPath,
		BadgePath:      d.cfg.BadgePath(),
		Settings:       settings,
	}
}
