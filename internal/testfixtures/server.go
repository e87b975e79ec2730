package testfixtures

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/home-assistant-tools/automation-lint-go/internal/knowledge"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// FakeInstance serves enough of the Home Assistant WebSocket and REST
// surface for client tests: the auth handshake, get_states, get_services
// and the registry list commands.
type FakeInstance struct {
	Server *httptest.Server

	Token      string
	States     []knowledge.EntityState
	Services   map[string]map[string]map[string]interface{}
	Registries RegistryIDs
}

// NewFakeInstance starts a fake instance with the household fixtures.
// The server is shut down when the test ends.
func NewFakeInstance(t *testing.T) *FakeInstance {
	t.Helper()
	f := &FakeInstance{
		Token:      DefaultToken,
		States:     HouseholdStates(),
		Services:   ServiceDomains(),
		Registries: HouseholdRegistries(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/websocket", f.handleWebsocket)
	mux.HandleFunc("/api/states", f.handleRESTStates)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the instance base URL.
func (f *FakeInstance) URL() string { return f.Server.URL }

func (f *FakeInstance) handleRESTStates(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+f.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(f.States)
}

func (f *FakeInstance) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if !f.authFlow(conn) {
		return
	}
	f.commandLoop(conn)
}

// authFlow runs the auth_required/auth/auth_ok exchange.
func (f *FakeInstance) authFlow(conn *websocket.Conn) bool {
	if err := conn.WriteJSON(map[string]string{"type": "auth_required", "ha_version": "2024.6.0"}); err != nil {
		return false
	}
	var auth map[string]interface{}
	if err := conn.ReadJSON(&auth); err != nil {
		return false
	}
	if auth["type"] != "auth" || auth["access_token"] != f.Token {
		conn.WriteJSON(map[string]string{"type": "auth_invalid", "message": "invalid access token"})
		return false
	}
	return conn.WriteJSON(map[string]string{"type": "auth_ok", "ha_version": "2024.6.0"}) == nil
}

// commandLoop answers command frames until the connection closes.
func (f *FakeInstance) commandLoop(conn *websocket.Conn) {
	for {
		var req map[string]interface{}
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		id, _ := req["id"].(float64)
		msgType, _ := req["type"].(string)

		var result interface{}
		switch msgType {
		case "get_states":
			result = f.States
		case "get_services":
			result = f.Services
		case "config/device_registry/list":
			result = idList(f.Registries.Devices, "id")
		case "config/area_registry/list":
			result = idList(f.Registries.Areas, "area_id")
		case "tag/list":
			result = idList(f.Registries.Tags, "tag_id")
		case "config_entries/get":
			result = idList(f.Registries.ConfigEntries, "entry_id")
		default:
			f.writeError(conn, int(id), "unknown_command", "unknown command "+msgType)
			continue
		}

		resp := map[string]interface{}{
			"id":      int(id),
			"type":    "result",
			"success": true,
			"result":  result,
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

func (f *FakeInstance) writeError(conn *websocket.Conn, id int, code, message string) {
	conn.WriteJSON(map[string]interface{}{
		"id":      id,
		"type":    "result",
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func idList(ids []string, key string) []map[string]string {
	out := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, map[string]string{key: id})
	}
	return out
}

// StaticHistory is an in-memory history provider for tests.
type StaticHistory struct {
	Observed map[string][]string
	Err      error
}

// ObservedStates returns the canned map or the canned error.
func (s *StaticHistory) ObservedStates(_ context.Context, _ int) (map[string][]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Observed, nil
}
