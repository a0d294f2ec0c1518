package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lookout/internal/config"
)

const userAgent = "Lookout/0.1.0"

// Alerter is the notification surface used when the watched page reports
// new items or a component requests a generic notification.
type Alerter interface {
	NotifyNewItems(ctx context.Context, delta int) error
	Notify(ctx context.Context, title, message string) error
	TestNotification(ctx context.Context) error
}

// NewAlerter builds an alerter backed by ntfy when configured. When no
// ntfy topic is configured, a noop implementation is returned.
func NewAlerter(cfg *config.Config) Alerter {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopAlerter{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyAlerter{
		endpoint: topic,
		pageURL:  strings.TrimSpace(cfg.Watch.PageURL),
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
	click    string
	actions  string
}

type ntfyAlerter struct {
	endpoint string
	pageURL  string
	client   *http.Client
}

func (n *ntfyAlerter) NotifyNewItems(ctx context.Context, delta int) error {
	noun := "items"
	if delta == 1 {
		noun = "item"
	}
	data := payload{
		title:   "Lookout - New Items",
		message: fmt.Sprintf("%d new %s on the watched page", delta, noun),
		tags:    []string{"lookout", "watch", "new"},
		click:   n.pageURL,
		actions: n.alertActions(),
	}
	return n.send(ctx, data)
}

func (n *ntfyAlerter) Notify(ctx context.Context, title, message string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Lookout"
	}
	data := payload{
		title:   title,
		message: strings.TrimSpace(message),
		tags:    []string{"lookout"},
		click:   n.pageURL,
		actions: n.alertActions(),
	}
	return n.send(ctx, data)
}

func (n *ntfyAlerter) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Lookout - Test",
		message:  "Notification system test",
		tags:     []string{"lookout", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

// alertActions builds the two-button layout carried by every alert: one
// opening the watched page, one dismissing the notification.
func (n *ntfyAlerter) alertActions() string {
	if n.pageURL == "" {
		return ""
	}
	return fmt.Sprintf("view, Open, %s, clear=true; broadcast, Dismiss, clear=true", n.pageURL)
}

func (n *ntfyAlerter) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}
	if data.click != "" {
		req.Header.Set("Click", data.click)
	}
	if data.actions != "" {
		req.Header.Set("Actions", data.actions)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopAlerter struct{}

func (noopAlerter) NotifyNewItems(context.Context, int) error       { return nil }
func (noopAlerter) Notify(context.Context, string, string) error    { return nil }
func (noopAlerter) TestNotification(context.Context) error          { return nil }
