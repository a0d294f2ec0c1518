package daemon

import (
	"context"
	"encoding/json"
	"fmt"

	"lookout/internal/logging"
)

// MessageTargetBackground addresses messages to this daemon. Messages for
// any other target are not for us and pass through untouched.
const MessageTargetBackground = "background"

// Inbound message types.
const (
	MessagePlaySound        = "play-sound"
	MessageShowNotification = "show-notification"
	MessageClearBadge       = "clear-badge"
)

// Message is the control envelope accepted by the daemon.
type Message struct {
	Target string          `json:"target"`
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type notificationData struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// HandleMessage processes one inbound message. Messages addressed to a
// different target and messages with an unrecognized type are ignored
// without error; the returned flag reports whether the message was acted
// on.
func (d *Daemon) HandleMessage(ctx context.Context, msg Message) (bool, error) {
	if msg.Target != MessageTargetBackground {
		d.logger.Debug("message for other target ignored",
			logging.String("target", msg.Target),
			logging.String("type", msg.Type))
		return false, nil
	}

	switch msg.Type {
	case MessagePlaySound:
		if err := d.dispatcher.PlaySound(ctx); err != nil {
			return true, fmt.Errorf("play sound: %w", err)
		}
		return true, nil
	case MessageShowNotification:
		var data notificationData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				return true, fmt.Errorf("decode notification data: %w", err)
			}
		}
		if err := d.dispatcher.ShowNotification(ctx, data.Title, data.Message); err != nil {
			return true, fmt.Errorf("show notification: %w", err)
		}
		return true, nil
	case MessageClearBadge:
		if err := d.ClearBadge(ctx); err != nil {
			return true, fmt.Errorf("clear badge: %w", err)
		}
		return true, nil
	default:
		d.logger.Debug("unknown message type ignored",
			logging.String("type", msg.Type))
		return false, nil
	}
}
