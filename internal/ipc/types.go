package ipc

import "encoding/json"

// StartRequest triggers daemon startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops the daemon.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running        bool              `json:"running"`
	PID            int               `json:"pid"`
	PageURL        string            `json:"page_url"`
	SettingsDBPath string            `json:"settings_db_path"`
	LockPath       string            `json:"lock_path"`
	BadgePath      string            `json:"badge_path"`
	Settings       map[string]string `json:"settings"`
}

// SendRequest carries a control message envelope to the daemon.
type SendRequest struct {
	Target string          `json:"target"`
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// SendResponse reports whether the daemon acted on the message.
type SendResponse struct {
	Handled bool `json:"handled"`
}

// SettingsListRequest fetches every persisted setting.
type SettingsListRequest struct{}

// SettingsListResponse contains all settings keyed by name.
type SettingsListResponse struct {
	Settings map[string]string `json:"settings"`
}

// SettingsGetRequest fetches a single setting.
type SettingsGetRequest struct {
	Key string `json:"key"`
}

// SettingsGetResponse contains a single setting value.
type SettingsGetResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsSetRequest stores a single setting.
type SettingsSetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsSetResponse confirms a settings write.
type SettingsSetResponse struct {
	Updated bool `json:"updated"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// LogTailRequest fetches log lines based on offset and follow semantics.
type LogTailRequest struct {
	Offset     int64 `json:"offset"`
	Limit      int   `json:"limit"`
	Follow     bool  `json:"follow"`
	WaitMillis int   `json:"wait_millis"`
}

// LogTailResponse returns log lines and the next offset.
type LogTailResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}
