package audio

import (
	"context"
	"errors"
	"sync"

	"log/slog"

	"lookout/internal/logging"
)

// CreateFunc builds a new surface for the given path.
type CreateFunc func(ctx context.Context, path string) (Surface, error)

// creation is the in-flight handle shared by every caller waiting on the
// same attempt. At most one non-nil creation exists per Manager.
type creation struct {
	done    chan struct{}
	surface Surface
	err     error
}

// Manager owns the live surfaces and the single in-flight creation slot.
type Manager struct {
	logger *slog.Logger
	create CreateFunc

	mu       sync.Mutex
	surfaces map[string]Surface
	inflight *creation
}

// NewManager constructs a surface manager using the provided creation
// function.
func NewManager(create CreateFunc, logger *slog.Logger) (*Manager, error) {
	if create == nil {
		return nil, errors.New("surface manager requires a create function")
	}
	return &Manager{
		logger:   logging.WithComponent(logger, "audio"),
		create:   create,
		surfaces: make(map[string]Surface),
	}, nil
}

// NewProcessManager constructs a manager that launches the configured player
// helper for each surface.
func NewProcessManager(player string, logger *slog.Logger) (*Manager, error) {
	return NewManager(func(ctx context.Context, path string) (Surface, error) {
		return StartProcessSurface(ctx, player, path, logger)
	}, logger)
}

// Ensure returns a live surface for path, creating one if necessary.
//
// Callers that arrive while a creation is in flight wait on that attempt
// instead of starting their own; the attempt's outcome, success or failure,
// is delivered to every waiter. The in-flight slot is cleared on both exit
// paths, so a call after a failure is free to try again.
func (m *Manager) Ensure(ctx context.Context, path string) (Surface, error) {
	m.mu.Lock()
	if s := m.liveLocked(path); s != nil {
		m.mu.Unlock()
		return s, nil
	}

	if c := m.inflight; c != nil {
		m.mu.Unlock()
		select {
		case <-c.done:
			return c.surface, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c := &creation{done: make(chan struct{})}
	m.inflight = c
	m.mu.Unlock()

	m.logger.Debug("creating playback surface", logging.String("path", path))
	surface, err := m.create(ctx, path)

	m.mu.Lock()
	if err == nil {
		m.surfaces[path] = surface
	}
	c.surface, c.err = surface, err
	m.inflight = nil
	m.mu.Unlock()
	close(c.done)

	if err != nil {
		m.logger.Warn("surface creation failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "surface_create_failed"),
			logging.String("path", path),
		)
	}
	return surface, err
}

// Play ensures the surface for path exists and delivers the request to it.
func (m *Manager) Play(ctx context.Context, path string, req PlayRequest) error {
	surface, err := m.Ensure(ctx, path)
	if err != nil {
		return err
	}
	return surface.Send(ctx, req)
}

// Close tears down every live surface.
func (m *Manager) Close() error {
	m.mu.Lock()
	surfaces := make([]Surface, 0, len(m.surfaces))
	for _, s := range m.surfaces {
		surfaces = append(surfaces, s)
	}
	m.surfaces = make(map[string]Surface)
	m.mu.Unlock()

	var firstErr error
	for _, s := range surfaces {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// liveLocked returns the registered surface for path when it is still alive;
// dead surfaces are dropped from the registry. Caller holds m.mu.
func (m *Manager) liveLocked(path string) Surface {
	s, ok := m.surfaces[path]
	if !ok {
		return nil
	}
	if !s.Alive() {
		delete(m.surfaces, path)
		return nil
	}
	return s
}
