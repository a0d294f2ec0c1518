package badge

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"lookout/internal/logging"
	"lookout/internal/store"
	"lookout/internal/testsupport"
)

type memoryRenderer struct {
	mu     sync.Mutex
	text   string
	sets   []string
	clears int
}

func (r *memoryRenderer) Set(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.sets = append(r.sets, text)
	return nil
}

func (r *memoryRenderer) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = ""
	r.clears++
	return nil
}

func (r *memoryRenderer) snapshot() (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, r.clears
}

func TestRecordDeltaAccumulatesCounter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	renderer := &memoryRenderer{}

	counter, err := NewCounter(st, renderer, time.Hour, logging.NewNop())
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}

	ctx := context.Background()
	if err := counter.RecordDelta(ctx, 2); err != nil {
		t.Fatalf("RecordDelta: %v", err)
	}
	if err := counter.RecordDelta(ctx, 3); err != nil {
		t.Fatalf("RecordDelta: %v", err)
	}

	total, err := st.GetInt(ctx, store.KeyCounter, 0)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if total != 5 {
		t.Fatalf("counter = %d, want 5", total)
	}

	text, _ := renderer.snapshot()
	if text != "3" {
		t.Fatalf("badge text = %q, want latest delta %q", text, "3")
	}
}

func TestRecordDeltaClearsAfterWindow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	renderer := &memoryRenderer{}

	counter, err := NewCounter(st, renderer, 20*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}

	if err := counter.RecordDelta(context.Background(), 1); err != nil {
		t.Fatalf("RecordDelta: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		text, clears := renderer.snapshot()
		if clears > 0 && text == "" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("badge not cleared within deadline (text=%q clears=%d)", text, clears)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// A clear timer armed by an earlier delta fires on schedule even when a
// later delta has refreshed the badge, wiping the newer text early.
func TestEarlierTimerClearsNewerBadge(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	renderer := &memoryRenderer{}

	counter, err := NewCounter(st, renderer, 40*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}

	ctx := context.Background()
	if err := counter.RecordDelta(ctx, 1); err != nil {
		t.Fatalf("RecordDelta: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if err := counter.RecordDelta(ctx, 2); err != nil {
		t.Fatalf("RecordDelta: %v", err)
	}

	// The first timer fires ~15ms from now, well inside the second badge's
	// own 40ms window.
	deadline := time.Now().Add(2 * time.Second)
	for {
		text, clears := renderer.snapshot()
		if clears >= 1 {
			if text != "" {
				t.Fatalf("badge text = %q after first clear, want empty", text)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("first clear timer never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClearRemovesBadgeImmediately(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	renderer := &memoryRenderer{}

	counter, err := NewCounter(st, renderer, time.Hour, logging.NewNop())
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}

	ctx := context.Background()
	if err := counter.RecordDelta(ctx, 4); err != nil {
		t.Fatalf("RecordDelta: %v", err)
	}
	if err := counter.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	text, clears := renderer.snapshot()
	if text != "" || clears != 1 {
		t.Fatalf("text=%q clears=%d, want cleared badge", text, clears)
	}
}

func TestFileRendererRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badge.json")
	renderer := NewFileRenderer(path)

	text, err := renderer.Text()
	if err != nil {
		t.Fatalf("Text on missing file: %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q before any write, want empty", text)
	}

	if err := renderer.Set("7"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	text, err = renderer.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "7" {
		t.Fatalf("text = %q, want 7", text)
	}

	if err := renderer.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	text, err = renderer.Text()
	if err != nil {
		t.Fatalf("Text after clear: %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q after clear, want empty", text)
	}
}
