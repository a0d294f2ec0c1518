package monitor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"log/slog"

	"lookout/internal/config"
	"lookout/internal/logging"
	"lookout/internal/store"
)

const userAgent = "Lookout/0.1.0"

// Dispatcher receives the computed delta for qualifying title updates.
type Dispatcher interface {
	Notify(ctx context.Context, delta int) error
}

type settingsStore interface {
	GetString(ctx context.Context, key, fallback string) (string, error)
	SetString(ctx context.Context, key, value string) error
}

type titleFetcher interface {
	FetchTitle(ctx context.Context) (title string, complete bool, err error)
}

// Monitor polls the watched page and feeds observations through the title
// gate. It is also driven directly by tests and IPC with synthetic updates.
type Monitor struct {
	logger     *slog.Logger
	store      settingsStore
	dispatcher Dispatcher
	fetch      titleFetcher

	pageURL      string
	emptyLabel   string
	pollInterval time.Duration

	mu      sync.Mutex
	running bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs a monitor for the configured page.
func New(cfg *config.Config, st settingsStore, dispatcher Dispatcher, logger *slog.Logger) (*Monitor, error) {
	if cfg == nil || st == nil || dispatcher == nil {
		return nil, errors.New("monitor requires config, store, and dispatcher")
	}

	poll := time.Duration(cfg.Watch.PollInterval) * time.Second
	if poll <= 0 {
		poll = 30 * time.Second
	}
	timeout := time.Duration(cfg.Watch.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Monitor{
		logger:     logging.WithComponent(logger, "monitor"),
		store:      st,
		dispatcher: dispatcher,
		fetch: &httpFetcher{
			url:    cfg.Watch.PageURL,
			client: &http.Client{Timeout: timeout},
		},
		pageURL:      cfg.Watch.PageURL,
		emptyLabel:   cfg.Watch.EmptyStateLabel,
		pollInterval: poll,
	}, nil
}

// Start launches the poll loop until the context is canceled.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.New("monitor already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.ctx = runCtx
	m.cancel = cancel
	m.running = true

	m.wg.Add(1)
	go m.loop()
	return nil
}

// Stop halts the poll loop and waits for in-flight work.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *Monitor) loop() {
	defer m.wg.Done()

	m.poll()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	ctx := m.ctx
	if ctx == nil {
		return
	}

	title, complete, err := m.fetch.FetchTitle(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		m.logger.Warn("page fetch failed; will retry",
			logging.Error(err),
			logging.String(logging.FieldEventType, "page_fetch_failed"),
			logging.String(logging.FieldErrorHint, "check watch.page_url and network reachability"),
		)
		return
	}

	if err := m.HandleTitleUpdate(ctx, m.pageURL, title, complete); err != nil {
		m.logger.Warn("title update handling failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "title_update_failed"),
			logging.String(logging.FieldTitle, title),
		)
	}
}

// HandleTitleUpdate applies the title gate to a single observation.
//
// The observation is ignored unless it is for the watched page, the load is
// complete, and the title differs from the persisted baseline. The baseline
// always advances to the observed title, even when no notification fires.
func (m *Monitor) HandleTitleUpdate(ctx context.Context, pageURL, newTitle string, complete bool) error {
	if pageURL != m.pageURL || !complete {
		return nil
	}

	baseline, err := m.store.GetString(ctx, store.KeyLastTitle, m.emptyLabel)
	if err != nil {
		return fmt.Errorf("read title baseline: %w", err)
	}
	if newTitle == baseline {
		return nil
	}

	delta := ParseCount(newTitle) - ParseCount(baseline)

	// Baseline read and write are two store round-trips; a concurrent update
	// between them diffs against the same baseline this one saw.
	if err := m.store.SetString(ctx, store.KeyLastTitle, newTitle); err != nil {
		return fmt.Errorf("advance title baseline: %w", err)
	}

	if strings.TrimSpace(newTitle) == m.emptyLabel || delta <= 0 {
		m.logger.Debug("title changed without new items",
			logging.String(logging.FieldTitle, newTitle),
			logging.Int(logging.FieldDelta, delta),
		)
		return nil
	}

	m.logger.Info("new items observed",
		logging.String(logging.FieldEventType, "new_items"),
		logging.String(logging.FieldTitle, newTitle),
		logging.Int(logging.FieldDelta, delta),
	)
	return m.dispatcher.Notify(ctx, delta)
}

type httpFetcher struct {
	url    string
	client *http.Client
}

func (f *httpFetcher) FetchTitle(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", false, fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}
	return ExtractTitle(resp.Body), true, nil
}
