// Package homeassistant talks to a live Home Assistant instance over its
// WebSocket and REST APIs to feed the knowledge base and registries.
package homeassistant

import "encoding/json"

// Message is one WebSocket API frame.
type Message struct {
	ID      int             `json:"id,omitempty"`
	Type    string          `json:"type"`
	Success *bool           `json:"success,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// APIError is the error payload of a failed command.
type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type deviceRegistryEntry struct {
	ID     string `json:"id"`
	AreaID string `json:"area_id,omitempty"`
	Name   string `json:"name,omitempty"`
}

type areaRegistryEntry struct {
	AreaID string `json:"area_id"`
	Name   string `json:"name,omitempty"`
}

type tagEntry struct {
	TagID string `json:"tag_id"`
	Name  string `json:"name,omitempty"`
}

type configEntry struct {
	EntryID string `json:"entry_id"`
	Domain  string `json:"domain,omitempty"`
	Title   string `json:"title,omitempty"`
}

// serviceField mirrors the per-field schema of get_services.
type serviceField struct {
	Required bool `json:"required,omitempty"`
}

// serviceDef mirrors one service definition of get_services.
type serviceDef struct {
	Fields map[string]serviceField `json:"fields,omitempty"`
}
