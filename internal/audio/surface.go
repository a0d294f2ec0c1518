package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"log/slog"

	"lookout/internal/logging"
)

// Wire constants for messages sent to the playback surface.
const (
	MessagePlaySound = "play-sound"
	SurfaceTarget    = "offscreen-doc"
)

// PlayRequest is the message delivered to the surface for each alert sound.
type PlayRequest struct {
	Type   string   `json:"type"`
	Target string   `json:"target"`
	Data   PlayData `json:"data"`
}

// PlayData carries the sound file name and normalized volume.
type PlayData struct {
	Audio  string  `json:"audio"`
	Volume float64 `json:"volume"`
}

// NewPlayRequest builds the outbound play message for the given sound file
// and volume percent. The percent is clamped to [0,100] and normalized to a
// fraction.
func NewPlayRequest(audioFile string, volumePercent int) PlayRequest {
	if volumePercent < 0 {
		volumePercent = 0
	}
	if volumePercent > 100 {
		volumePercent = 100
	}
	return PlayRequest{
		Type:   MessagePlaySound,
		Target: SurfaceTarget,
		Data: PlayData{
			Audio:  audioFile,
			Volume: float64(volumePercent) / 100,
		},
	}
}

// Surface renders alert sounds.
type Surface interface {
	// Path identifies the surface for introspection.
	Path() string
	// Alive reports whether the surface can still accept requests.
	Alive() bool
	// Send delivers a play request to the surface.
	Send(ctx context.Context, req PlayRequest) error
	// Close tears the surface down.
	Close() error
}

// processSurface runs the player helper as a child process and streams play
// requests to its stdin, one JSON object per line.
type processSurface struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	done  chan struct{}
	errMu sync.Mutex
	err   error
}

// StartProcessSurface launches the player binary with the surface path as its
// argument. The returned surface stays alive until the process exits.
func StartProcessSurface(ctx context.Context, player, path string, logger *slog.Logger) (Surface, error) {
	cmd := exec.CommandContext(ctx, player, path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open player stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player %q: %w", player, err)
	}

	s := &processSurface{
		path:   path,
		logger: logging.WithComponent(logger, "audio-surface"),
		cmd:    cmd,
		stdin:  stdin,
		done:   make(chan struct{}),
	}

	go func() {
		err := cmd.Wait()
		s.errMu.Lock()
		s.err = err
		s.errMu.Unlock()
		close(s.done)
		if err != nil {
			s.logger.Warn("player exited",
				logging.Error(err),
				logging.String(logging.FieldEventType, "player_exited"),
			)
		}
	}()

	return s, nil
}

func (s *processSurface) Path() string {
	return s.path
}

func (s *processSurface) Alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *processSurface) Send(ctx context.Context, req PlayRequest) error {
	if !s.Alive() {
		return errors.New("surface no longer running")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode play request: %w", err)
	}
	payload = append(payload, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.stdin.Write(payload); err != nil {
		return fmt.Errorf("write play request: %w", err)
	}
	return nil
}

func (s *processSurface) Close() error {
	s.mu.Lock()
	_ = s.stdin.Close()
	cmd := s.cmd
	s.mu.Unlock()

	if s.Alive() && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	<-s.done
	return nil
}
