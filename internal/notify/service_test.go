package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lookout/internal/testsupport"
)

func TestNotifyNewItemsSendsAlertHeaders(t *testing.T) {
	type captured struct {
		body    string
		title   string
		click   string
		actions string
		tags    string
	}
	requests := make(chan captured, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- captured{
			body:    string(body),
			title:   r.Header.Get("Title"),
			click:   r.Header.Get("Click"),
			actions: r.Header.Get("Actions"),
			tags:    r.Header.Get("Tags"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = server.URL

	alerter := NewAlerter(cfg)
	if err := alerter.NotifyNewItems(context.Background(), 3); err != nil {
		t.Fatalf("NotifyNewItems: %v", err)
	}

	got := <-requests
	if got.title != "Lookout - New Items" {
		t.Fatalf("title = %q", got.title)
	}
	if got.body != "3 new items on the watched page" {
		t.Fatalf("body = %q", got.body)
	}
	if got.click != cfg.Watch.PageURL {
		t.Fatalf("click = %q, want %q", got.click, cfg.Watch.PageURL)
	}
	wantActions := "view, Open, " + cfg.Watch.PageURL + ", clear=true; broadcast, Dismiss, clear=true"
	if got.actions != wantActions {
		t.Fatalf("actions = %q, want %q", got.actions, wantActions)
	}
	if got.tags != "lookout,watch,new" {
		t.Fatalf("tags = %q", got.tags)
	}
}

func TestNotifyNewItemsSingularMessage(t *testing.T) {
	bodies := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies <- string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = server.URL

	alerter := NewAlerter(cfg)
	if err := alerter.NotifyNewItems(context.Background(), 1); err != nil {
		t.Fatalf("NotifyNewItems: %v", err)
	}
	if got := <-bodies; got != "1 new item on the watched page" {
		t.Fatalf("body = %q", got)
	}
}

func TestNewAlerterWithoutTopicIsNoop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = "   "

	alerter := NewAlerter(cfg)
	if _, ok := alerter.(noopAlerter); !ok {
		t.Fatalf("alerter = %T, want noop", alerter)
	}
	if err := alerter.NotifyNewItems(context.Background(), 5); err != nil {
		t.Fatalf("noop NotifyNewItems: %v", err)
	}
}

func TestSendreportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = server.URL

	alerter := NewAlerter(cfg)
	if err := alerter.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
