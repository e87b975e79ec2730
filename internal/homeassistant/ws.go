package homeassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
	"github.com/home-assistant-tools/automation-lint-go/internal/logger"
	"github.com/home-assistant-tools/automation-lint-go/internal/knowledge"
	"github.com/home-assistant-tools/automation-lint-go/internal/registry"
)

// Client is a WebSocket API client. One goroutine reads frames and routes
// results to the command that is waiting on that message id.
type Client struct {
	conn      *websocket.Conn
	messageID atomic.Int32
	pendingMu sync.RWMutex
	pending   map[int]chan *Message
	done      chan struct{}
	readErr   error
	log       *logrus.Logger
}

// WebsocketURL converts a base instance URL into the websocket endpoint.
func WebsocketURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", apperrors.Create(apperrors.CodeConfigInvalid).WithMessagef("invalid Home Assistant URL %q", base).WithCause(err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", apperrors.Create(apperrors.CodeConfigInvalid).WithMessagef("unsupported URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/websocket"
	return u.String(), nil
}

// Dial connects to the instance, completes the auth handshake and starts
// the read loop.
func Dial(ctx context.Context, baseURL, token string, log *logrus.Logger) (*Client, error) {
	wsURL, err := WebsocketURL(baseURL)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, apperrors.Create(apperrors.CodeWebsocket).WithPath(wsURL).WithCause(err)
	}
	if err := authenticate(conn, token); err != nil {
		conn.Close()
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	c := &Client{
		conn:    conn,
		pending: make(map[int]chan *Message),
		done:    make(chan struct{}),
		log:     log,
	}
	go c.readLoop()
	return c, nil
}

// authenticate performs the auth_required/auth/auth_ok exchange.
func authenticate(conn *websocket.Conn, token string) error {
	var hello struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&hello); err != nil {
		return apperrors.Create(apperrors.CodeWebsocket).WithMessage("failed to read auth_required").WithCause(err)
	}
	if hello.Type != "auth_required" {
		return apperrors.Create(apperrors.CodeAuthFailed).WithMessagef("unexpected message type %q", hello.Type)
	}

	if err := conn.WriteJSON(map[string]string{"type": "auth", "access_token": token}); err != nil {
		return apperrors.Create(apperrors.CodeWebsocket).WithMessage("failed to send auth").WithCause(err)
	}

	var result struct {
		Type    string `json:"type"`
		Message string `json:"message,omitempty"`
	}
	if err := conn.ReadJSON(&result); err != nil {
		return apperrors.Create(apperrors.CodeWebsocket).WithMessage("failed to read auth result").WithCause(err)
	}
	if result.Type != "auth_ok" {
		return apperrors.Create(apperrors.CodeAuthFailed).WithMessage(result.Message)
	}
	return nil
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) nextID() int {
	return int(c.messageID.Add(1))
}

// readLoop reads frames until the connection dies, then fails every pending
// command.
func (c *Client) readLoop() {
	defer close(c.done)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.readErr = err
			c.pendingMu.Lock()
			for _, ch := range c.pending {
				close(ch)
			}
			c.pending = make(map[int]chan *Message)
			c.pendingMu.Unlock()
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type != "result" && msg.Type != "pong" {
			continue
		}

		c.pendingMu.RLock()
		ch, ok := c.pending[msg.ID]
		c.pendingMu.RUnlock()
		if ok {
			ch <- &msg
		}
	}
}

// Command sends one command frame, waits for its result and unmarshals it
// into out. A nil out discards the result.
func (c *Client) Command(ctx context.Context, msgType string, extra map[string]interface{}, out interface{}) error {
	id := c.nextID()

	frame := map[string]interface{}{"id": id, "type": msgType}
	for k, v := range extra {
		frame[k] = v
	}

	respCh := make(chan *Message, 1)
	c.pendingMu.Lock()
	c.pending[id] = respCh
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	data, err := json.Marshal(frame)
	if err != nil {
		return apperrors.Create(apperrors.CodeWebsocket).WithMessagef("failed to marshal %q command", msgType).WithCause(err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return apperrors.Create(apperrors.CodeWebsocket).WithMessagef("failed to send %q command", msgType).WithCause(err)
	}

	select {
	case resp, ok := <-respCh:
		if !ok {
			return apperrors.Create(apperrors.CodeWebsocket).WithMessage("connection closed").WithCause(c.readErr)
		}
		if resp.Success != nil && !*resp.Success {
			errMsg := "unknown error"
			if resp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return apperrors.Create(apperrors.CodeWebsocket).WithMessagef("%q command failed: %s", msgType, errMsg)
		}
		if out == nil || resp.Result == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return apperrors.Create(apperrors.CodeResponseJSON).WithMessagef("failed to decode %q result", msgType).WithCause(err)
		}
		return nil
	case <-c.done:
		return apperrors.Create(apperrors.CodeWebsocket).WithMessage("connection closed").WithCause(c.readErr)
	case <-ctx.Done():
		return apperrors.Create(apperrors.CodeWebsocket).WithMessagef("%q command canceled", msgType).WithCause(ctx.Err())
	}
}

// FetchStates returns the current entity snapshot via get_states.
func (c *Client) FetchStates(ctx context.Context) ([]knowledge.EntityState, error) {
	var states []knowledge.EntityState
	if err := c.Command(ctx, "get_states", nil, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// RegistrySnapshot fetches the device, area, tag and config-entry registries
// and assembles an immutable snapshot.
func (c *Client) RegistrySnapshot(ctx context.Context) (*registry.Snapshot, error) {
	var devices []deviceRegistryEntry
	if err := c.Command(ctx, "config/device_registry/list", nil, &devices); err != nil {
		return nil, apperrors.Create(apperrors.CodeRegistryUnavailable).WithCause(err)
	}
	var areas []areaRegistryEntry
	if err := c.Command(ctx, "config/area_registry/list", nil, &areas); err != nil {
		return nil, apperrors.Create(apperrors.CodeRegistryUnavailable).WithCause(err)
	}

	// Tags and config entries are optional surfaces; a failure there only
	// narrows coverage.
	var tags []tagEntry
	if err := c.Command(ctx, "tag/list", nil, &tags); err != nil {
		c.log.WithError(err).Debug("tag registry unavailable")
		tags = nil
	}
	var entries []configEntry
	if err := c.Command(ctx, "config_entries/get", nil, &entries); err != nil {
		c.log.WithError(err).Debug("config entries unavailable")
		entries = nil
	}

	deviceIDs := make([]string, 0, len(devices))
	for _, d := range devices {
		deviceIDs = append(deviceIDs, d.ID)
	}
	areaIDs := make([]string, 0, len(areas))
	for _, a := range areas {
		areaIDs = append(areaIDs, a.AreaID)
	}
	tagIDs := make([]string, 0, len(tags))
	for _, t := range tags {
		tagIDs = append(tagIDs, t.TagID)
	}
	entryIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		entryIDs = append(entryIDs, e.EntryID)
	}
	return registry.New(deviceIDs, areaIDs, tagIDs, entryIDs), nil
}

// ServiceCatalog fetches the declared services via get_services.
func (c *Client) ServiceCatalog(ctx context.Context) (*Catalog, error) {
	var domains map[string]map[string]serviceDef
	if err := c.Command(ctx, "get_services", nil, &domains); err != nil {
		return nil, err
	}
	return newCatalog(domains), nil
}
