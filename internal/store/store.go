package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"lookout/internal/config"
)

// Persisted setting keys. The names are part of the on-disk contract and
// mirror the wire names used by inbound messages and the CLI.
const (
	KeyAudioActive      = "audioActive"
	KeyShowNotification = "showNotification"
	KeyOpenSourcePage   = "openSourcePage"
	KeyAudioFile        = "audioFile"
	KeyVolumePercent    = "volumePercent"
	KeyCounter          = "counter"
	KeyLastTitle        = "lastTitle"
)

// Keys lists every known setting key in display order.
var Keys = []string{
	KeyAudioActive,
	KeyShowNotification,
	KeyOpenSourcePage,
	KeyAudioFile,
	KeyVolumePercent,
	KeyCounter,
	KeyLastTitle,
}

// DefaultAudioFile is the seeded alert sound.
const DefaultAudioFile = "alert1.mp3"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Store manages settings persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the settings database. The boolean result
// reports whether the database was created by this call, which the daemon
// treats as a fresh install.
func Open(cfg *config.Config) (*Store, bool, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, false, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	created := false
	if _, err := os.Stat(dbPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, false, fmt.Errorf("stat settings db: %w", err)
		}
		created = true
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, false, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, false, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, false, fmt.Errorf("init settings schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, created, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Seed inserts the provided defaults for keys that have no value yet.
// Existing values are never overwritten. Each key is written independently;
// the keys are disjoint so no cross-key ordering is required.
func (s *Store) Seed(ctx context.Context, defaults map[string]string) error {
	for key, value := range defaults {
		err := s.execWithRetry(ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO NOTHING`,
			key, value, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("seed setting %q: %w", key, err)
		}
	}
	return nil
}

// GetString returns the stored value for key, or fallback when unset.
func (s *Store) GetString(ctx context.Context, key, fallback string) (string, error) {
	ctx = ensureContext(ctx)
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %q: %w", key, err)
	}
	return value, nil
}

// GetBool returns the stored boolean for key, or fallback when unset.
func (s *Store) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	raw, err := s.GetString(ctx, key, strconv.FormatBool(fallback))
	if err != nil {
		return false, err
	}
	parsed, parseErr := strconv.ParseBool(strings.TrimSpace(raw))
	if parseErr != nil {
		return fallback, nil
	}
	return parsed, nil
}

// GetInt returns the stored integer for key, or fallback when unset.
func (s *Store) GetInt(ctx context.Context, key string, fallback int) (int, error) {
	raw, err := s.GetString(ctx, key, strconv.Itoa(fallback))
	if err != nil {
		return 0, err
	}
	parsed, parseErr := strconv.Atoi(strings.TrimSpace(raw))
	if parseErr != nil {
		return fallback, nil
	}
	return parsed, nil
}

// SetString stores value under key, creating or replacing it.
func (s *Store) SetString(ctx context.Context, key, value string) error {
	err := s.execWithRetry(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write setting %q: %w", key, err)
	}
	return nil
}

// SetBool stores a boolean value under key.
func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.SetString(ctx, key, strconv.FormatBool(value))
}

// SetInt stores an integer value under key.
func (s *Store) SetInt(ctx context.Context, key string, value int) error {
	return s.SetString(ctx, key, strconv.Itoa(value))
}

// All returns every stored setting keyed by name.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return values, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
