// Package browser opens URLs on the user's desktop through a configured
// opener command.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Opener opens a URL in the user's browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

type execOpener struct {
	command string
	run     func(ctx context.Context, command, url string) error
}

// NewOpener returns an opener that shells out to command (typically
// xdg-open) with the URL as its only argument.
func NewOpener(command string) (Opener, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, fmt.Errorf("browser: opener command is required")
	}
	return &execOpener{command: command, run: runCommand}, nil
}

func (o *execOpener) Open(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("browser: url is required")
	}
	if err := o.run(ctx, o.command, url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func runCommand(ctx context.Context, command, url string) error {
	cmd := exec.CommandContext(ctx, command, url)
	output, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(output))
		if trimmed != "" {
			return fmt.Errorf("%w: %s", err, trimmed)
		}
		return err
	}
	return nil
}
