package badge

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"lookout/internal/logging"
	"lookout/internal/store"
)

// DefaultWindow is how long a badge stays visible before it is cleared.
const DefaultWindow = 20 * time.Second

// Renderer displays badge text or removes it.
type Renderer interface {
	Set(text string) error
	Clear() error
}

type counterStore interface {
	GetInt(ctx context.Context, key string, fallback int) (int, error)
	SetInt(ctx context.Context, key string, value int) error
}

// Counter accumulates observed deltas into the persisted counter and
// surfaces each delta as transient badge text.
type Counter struct {
	store    counterStore
	renderer Renderer
	window   time.Duration
	logger   *slog.Logger
}

// NewCounter creates a badge counter. A zero window falls back to
// DefaultWindow.
func NewCounter(st counterStore, renderer Renderer, window time.Duration, logger *slog.Logger) (*Counter, error) {
	if st == nil {
		return nil, fmt.Errorf("badge: store is required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("badge: renderer is required")
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Counter{
		store:    st,
		renderer: renderer,
		window:   window,
		logger:   logging.WithComponent(logger, "badge"),
	}, nil
}

// RecordDelta adds delta to the running counter, shows the delta as badge
// text, and schedules a clear after the display window.
//
// Each call arms its own clear timer and nothing cancels earlier ones, so
// a timer from a previous delta can wipe the badge set by a later one
// before its own window has elapsed.
func (c *Counter) RecordDelta(ctx context.Context, delta int) error {
	current, err := c.store.GetInt(ctx, store.KeyCounter, 0)
	if err != nil {
		return fmt.Errorf("read counter: %w", err)
	}
	if err := c.store.SetInt(ctx, store.KeyCounter, current+delta); err != nil {
		return fmt.Errorf("update counter: %w", err)
	}

	text := strconv.Itoa(delta)
	if err := c.renderer.Set(text); err != nil {
		return fmt.Errorf("set badge: %w", err)
	}
	c.logger.Info("badge set",
		logging.Int(logging.FieldDelta, delta),
		logging.Int("counterTotal", current+delta))

	time.AfterFunc(c.window, func() {
		if err := c.renderer.Clear(); err != nil {
			c.logger.Warn("badge clear failed", logging.Error(err))
		}
	})
	return nil
}

// Clear removes the badge immediately.
func (c *Counter) Clear(ctx context.Context) error {
	if err := c.renderer.Clear(); err != nil {
		return fmt.Errorf("clear badge: %w", err)
	}
	c.logger.Info("badge cleared")
	return nil
}
