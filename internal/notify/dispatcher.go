package notify

import (
	"context"
	"fmt"
	"log/slog"

	"lookout/internal/audio"
	"lookout/internal/logging"
	"lookout/internal/store"
)

type settingsReader interface {
	GetString(ctx context.Context, key, fallback string) (string, error)
	GetBool(ctx context.Context, key string, fallback bool) (bool, error)
	GetInt(ctx context.Context, key string, fallback int) (int, error)
}

type audioPlayer interface {
	Play(ctx context.Context, path string, req audio.PlayRequest) error
}

type badgeRecorder interface {
	RecordDelta(ctx context.Context, delta int) error
}

// Dispatcher fans a new-items observation out to the alerter, the audio
// surface, and the badge counter.
type Dispatcher struct {
	settings    settingsReader
	alerter     Alerter
	player      audioPlayer
	badge       badgeRecorder
	surfacePath string
	logger      *slog.Logger
}

// NewDispatcher wires the alert fan-out. surfacePath identifies the audio
// surface handed to the player on each request.
func NewDispatcher(settings settingsReader, alerter Alerter, player audioPlayer, badge badgeRecorder, surfacePath string, logger *slog.Logger) (*Dispatcher, error) {
	if settings == nil {
		return nil, fmt.Errorf("notify: settings store is required")
	}
	if alerter == nil {
		alerter = noopAlerter{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		settings:    settings,
		alerter:     alerter,
		player:      player,
		badge:       badge,
		surfacePath: surfacePath,
		logger:      logging.WithComponent(logger, "notify"),
	}, nil
}

// Notify handles an observed increase of delta items. The alert always
// goes out; settings are read at dispatch time so a toggle flipped after
// the observation still governs the audio side.
func (d *Dispatcher) Notify(ctx context.Context, delta int) error {
	audioActive, err := d.settings.GetBool(ctx, store.KeyAudioActive, true)
	if err != nil {
		return fmt.Errorf("read audio setting: %w", err)
	}
	showNotification, err := d.settings.GetBool(ctx, store.KeyShowNotification, true)
	if err != nil {
		return fmt.Errorf("read notification setting: %w", err)
	}

	if err := d.alerter.NotifyNewItems(ctx, delta); err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	d.logger.Info("alert dispatched",
		logging.Int(logging.FieldDelta, delta),
		logging.Bool("audioActive", audioActive),
		logging.Bool("showNotification", showNotification))

	if audioActive {
		if err := d.playConfiguredSound(ctx); err != nil {
			d.logger.Warn("audio playback failed", logging.Error(err))
		}
	}

	if d.badge != nil {
		if err := d.badge.RecordDelta(ctx, delta); err != nil {
			return fmt.Errorf("record badge delta: %w", err)
		}
	}
	return nil
}

// PlaySound plays the configured alert sound immediately, regardless of
// the audioActive toggle. Inbound play-sound messages land here.
func (d *Dispatcher) PlaySound(ctx context.Context) error {
	return d.playConfiguredSound(ctx)
}

// ShowNotification sends a generic notification with the given title and
// message. Inbound show-notification messages land here.
func (d *Dispatcher) ShowNotification(ctx context.Context, title, message string) error {
	if err := d.alerter.Notify(ctx, title, message); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// TestNotification exercises the alerter end to end.
func (d *Dispatcher) TestNotification(ctx context.Context) error {
	return d.alerter.TestNotification(ctx)
}

func (d *Dispatcher) playConfiguredSound(ctx context.Context) error {
	if d.player == nil {
		return nil
	}
	audioFile, err := d.settings.GetString(ctx, store.KeyAudioFile, store.DefaultAudioFile)
	if err != nil {
		return fmt.Errorf("read audio file setting: %w", err)
	}
	volume, err := d.settings.GetInt(ctx, store.KeyVolumePercent, 100)
	if err != nil {
		return fmt.Errorf("read volume setting: %w", err)
	}
	req := audio.NewPlayRequest(audioFile, volume)
	if err := d.player.Play(ctx, d.surfacePath, req); err != nil {
		return fmt.Errorf("play %s: %w", audioFile, err)
	}
	return nil
}
