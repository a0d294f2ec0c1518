package notify

import (
	"context"
	"sync"
	"testing"

	"lookout/internal/audio"
	"lookout/internal/logging"
	"lookout/internal/store"
	"lookout/internal/testsupport"
)

type recordingAlerter struct {
	mu       sync.Mutex
	newItems []int
	generic  []string
	tests    int
}

func (a *recordingAlerter) NotifyNewItems(_ context.Context, delta int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.newItems = append(a.newItems, delta)
	return nil
}

func (a *recordingAlerter) Notify(_ context.Context, title, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generic = append(a.generic, title+": "+message)
	return nil
}

func (a *recordingAlerter) TestNotification(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tests++
	return nil
}

type recordingPlayer struct {
	mu       sync.Mutex
	paths    []string
	requests []audio.PlayRequest
}

func (p *recordingPlayer) Play(_ context.Context, path string, req audio.PlayRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	p.requests = append(p.requests, req)
	return nil
}

type recordingBadge struct {
	mu     sync.Mutex
	deltas []int
}

func (b *recordingBadge) RecordDelta(_ context.Context, delta int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deltas = append(b.deltas, delta)
	return nil
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *store.Store, *recordingAlerter, *recordingPlayer, *recordingBadge) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	if err := st.Seed(context.Background(), store.Defaults(cfg.Watch.EmptyStateLabel)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	alerter := &recordingAlerter{}
	player := &recordingPlayer{}
	badge := &recordingBadge{}
	dispatcher, err := NewDispatcher(st, alerter, player, badge, "alert.html", logging.NewNop())
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return dispatcher, st, alerter, player, badge
}

func TestNotifyFansOutAlertAudioAndBadge(t *testing.T) {
	dispatcher, _, alerter, player, badge := newTestDispatcher(t)

	if err := dispatcher.Notify(context.Background(), 2); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(alerter.newItems) != 1 || alerter.newItems[0] != 2 {
		t.Fatalf("alerts = %v, want [2]", alerter.newItems)
	}
	if len(player.requests) != 1 {
		t.Fatalf("player calls = %d, want 1", len(player.requests))
	}
	if player.paths[0] != "alert.html" {
		t.Fatalf("surface path = %q", player.paths[0])
	}
	req := player.requests[0]
	if req.Type != audio.MessagePlaySound || req.Target != audio.SurfaceTarget {
		t.Fatalf("request envelope = %+v", req)
	}
	if req.Data.Audio != store.DefaultAudioFile || req.Data.Volume != 1 {
		t.Fatalf("request data = %+v", req.Data)
	}
	if len(badge.deltas) != 1 || badge.deltas[0] != 2 {
		t.Fatalf("badge deltas = %v, want [2]", badge.deltas)
	}
}

func TestNotifyReadsAudioToggleAtDispatchTime(t *testing.T) {
	dispatcher, st, alerter, player, _ := newTestDispatcher(t)
	ctx := context.Background()

	if err := st.SetBool(ctx, store.KeyAudioActive, false); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if err := dispatcher.Notify(ctx, 1); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(player.requests) != 0 {
		t.Fatalf("audio played with audioActive=false: %v", player.requests)
	}
	if len(alerter.newItems) != 1 {
		t.Fatalf("alert count = %d, want 1", len(alerter.newItems))
	}

	if err := st.SetBool(ctx, store.KeyAudioActive, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if err := dispatcher.Notify(ctx, 1); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(player.requests) != 1 {
		t.Fatalf("audio not played after toggle back on: %d calls", len(player.requests))
	}
}

func TestNotifyAlertsEvenWhenShowNotificationOff(t *testing.T) {
	dispatcher, st, alerter, _, _ := newTestDispatcher(t)
	ctx := context.Background()

	if err := st.SetBool(ctx, store.KeyShowNotification, false); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if err := dispatcher.Notify(ctx, 3); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(alerter.newItems) != 1 {
		t.Fatalf("alert count = %d, want 1", len(alerter.newItems))
	}
}

func TestNotifyUsesStoredVolumeAndFile(t *testing.T) {
	dispatcher, st, _, player, _ := newTestDispatcher(t)
	ctx := context.Background()

	if err := st.SetString(ctx, store.KeyAudioFile, "alert2.mp3"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if err := st.SetInt(ctx, store.KeyVolumePercent, 40); err != nil {
		t.Fatalf("SetInt: %v", err)
	}

	if err := dispatcher.Notify(ctx, 1); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(player.requests) != 1 {
		t.Fatalf("player calls = %d, want 1", len(player.requests))
	}
	req := player.requests[0]
	if req.Data.Audio != "alert2.mp3" {
		t.Fatalf("audio = %q", req.Data.Audio)
	}
	if req.Data.Volume != 0.4 {
		t.Fatalf("volume = %v, want 0.4", req.Data.Volume)
	}
}

func TestPlaySoundIgnoresAudioToggle(t *testing.T) {
	dispatcher, st, _, player, _ := newTestDispatcher(t)
	ctx := context.Background()

	if err := st.SetBool(ctx, store.KeyAudioActive, false); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if err := dispatcher.PlaySound(ctx); err != nil {
		t.Fatalf("PlaySound: %v", err)
	}
	if len(player.requests) != 1 {
		t.Fatalf("player calls = %d, want 1", len(player.requests))
	}
}

func TestShowNotificationSendsGenericAlert(t *testing.T) {
	dispatcher, _, alerter, _, _ := newTestDispatcher(t)

	if err := dispatcher.ShowNotification(context.Background(), "Lookout", "hello"); err != nil {
		t.Fatalf("ShowNotification: %v", err)
	}
	if len(alerter.generic) != 1 || alerter.generic[0] != "Lookout: hello" {
		t.Fatalf("generic alerts = %v", alerter.generic)
	}
}
