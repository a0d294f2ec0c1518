package ipc

import (
	"encoding/json"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Start requests the daemon to start monitoring.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("Lookout.Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop monitoring.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Lookout.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Lookout.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Send delivers a control message envelope to the daemon.
func (c *Client) Send(target, messageType string, data json.RawMessage) (*SendResponse, error) {
	var resp SendResponse
	req := SendRequest{Target: target, Type: messageType, Data: data}
	if err := c.client.Call("Lookout.Send", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SettingsList returns every persisted setting.
func (c *Client) SettingsList() (*SettingsListResponse, error) {
	var resp SettingsListResponse
	if err := c.client.Call("Lookout.SettingsList", SettingsListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SettingsGet returns a single setting value.
func (c *Client) SettingsGet(key string) (*SettingsGetResponse, error) {
	var resp SettingsGetResponse
	if err := c.client.Call("Lookout.SettingsGet", SettingsGetRequest{Key: key}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SettingsSet stores a single setting value.
func (c *Client) SettingsSet(key, value string) (*SettingsSetResponse, error) {
	var resp SettingsSetResponse
	if err := c.client.Call("Lookout.SettingsSet", SettingsSetRequest{Key: key, Value: value}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Lookout.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LogTail returns log lines from the daemon.
func (c *Client) LogTail(req LogTailRequest) (*LogTailResponse, error) {
	var resp LogTailResponse
	if err := c.client.Call("Lookout.LogTail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
