package browser

import (
	"context"
	"errors"
	"testing"
)

func TestNewOpenerRequiresCommand(t *testing.T) {
	if _, err := NewOpener("   "); err == nil {
		t.Fatal("expected error for blank command")
	}
}

func TestOpenRunsConfiguredCommand(t *testing.T) {
	opener, err := NewOpener("xdg-open")
	if err != nil {
		t.Fatalf("NewOpener: %v", err)
	}

	var gotCommand, gotURL string
	opener.(*execOpener).run = func(_ context.Context, command, url string) error {
		gotCommand = command
		gotURL = url
		return nil
	}

	if err := opener.Open(context.Background(), "https://example.com/inbox"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if gotCommand != "xdg-open" || gotURL != "https://example.com/inbox" {
		t.Fatalf("ran %q %q", gotCommand, gotURL)
	}
}

func TestOpenRejectsEmptyURL(t *testing.T) {
	opener, err := NewOpener("xdg-open")
	if err != nil {
		t.Fatalf("NewOpener: %v", err)
	}
	if err := opener.Open(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestOpenWrapsCommandFailure(t *testing.T) {
	opener, err := NewOpener("xdg-open")
	if err != nil {
		t.Fatalf("NewOpener: %v", err)
	}

	failure := errors.New("exit status 2")
	opener.(*execOpener).run = func(context.Context, string, string) error {
		return failure
	}

	err = opener.Open(context.Background(), "https://example.com")
	if !errors.Is(err, failure) {
		t.Fatalf("err = %v, want wrapped command failure", err)
	}
}
