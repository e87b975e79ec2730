package knowledge

import "context"

// EntityState is one entity's snapshot from the live instance.
type EntityState struct {
	EntityID   string                 `json:"entity_id"`
	State      string                 `json:"state"`
	Attributes map[string]interface{} `json:"attributes"`
}

// CapabilityProvider supplies the current entity snapshot. Implemented by
// the Home Assistant client and by fixture-backed providers in tests.
type CapabilityProvider interface {
	FetchStates(ctx context.Context) ([]EntityState, error)
}

// HistoryProvider supplies states observed over a lookback window, keyed by
// entity id. Implemented by the recorder database reader.
type HistoryProvider interface {
	ObservedStates(ctx context.Context, days int) (map[string][]string, error)
}

// SchemaProvider supplies declared state vocabularies, keyed by entity id.
type SchemaProvider interface {
	DeclaredStates() (map[string][]string, error)
}

// CorrectionStore persists user-confirmed state corrections across runs.
type CorrectionStore interface {
	Load() (map[string][]string, error)
	Add(entityID, state string) error
}
