package badge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// badgeColor is the fixed background color for badge text.
const badgeColor = "#d00018"

type badgeState struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// FileRenderer persists the badge state to a JSON file so external
// consumers can display it.
type FileRenderer struct {
	mu   sync.Mutex
	path string
}

// NewFileRenderer creates a renderer writing to path.
func NewFileRenderer(path string) *FileRenderer {
	return &FileRenderer{path: path}
}

// Set writes text with the fixed badge color.
func (r *FileRenderer) Set(text string) error {
	return r.write(badgeState{Text: text, Color: badgeColor})
}

// Clear removes any badge text.
func (r *FileRenderer) Clear() error {
	return r.write(badgeState{Color: badgeColor})
}

// Text returns the currently displayed badge text, or empty when no badge
// file exists yet.
func (r *FileRenderer) Text() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read badge file: %w", err)
	}
	var state badgeState
	if err := json.Unmarshal(raw, &state); err != nil {
		return "", fmt.Errorf("decode badge file: %w", err)
	}
	return state.Text, nil
}

func (r *FileRenderer) write(state badgeState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode badge state: %w", err)
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return fmt.Errorf("write badge file: %w", err)
	}
	return nil
}
