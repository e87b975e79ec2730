package knowledge

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/home-assistant-tools/automation-lint-go/internal/common"
	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
	"github.com/home-assistant-tools/automation-lint-go/internal/logger"
)

// StateSet is a set of state or attribute names.
type StateSet map[string]struct{}

// Has reports exact membership.
func (s StateSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the members sorted, for stable messages.
func (s StateSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func newStateSet(values []string) StateSet {
	set := make(StateSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Base merges every loaded knowledge source behind one query surface. Loads
// fetch outside the lock and swap results in under it, so queries stay fast
// while sources refresh. Queries on an empty base report no opinion, never
// errors: a missing source degrades coverage, not correctness.
type Base struct {
	mu    sync.RWMutex
	log   *logrus.Logger
	order []Tier
	store CorrectionStore

	snapshot     map[string]EntityState
	haveSnapshot bool
	historical   map[string]StateSet
	observedIDs  map[string]struct{}
	schema       map[string]StateSet
	corrections  map[string]StateSet

	historyProvider HistoryProvider
	historyDays     int
}

// NewBase creates an empty knowledge base. A nil order uses the default
// precedence; a nil store drops corrections; a nil logger discards.
func NewBase(order []Tier, store CorrectionStore, log *logrus.Logger) *Base {
	if len(order) == 0 {
		order = DefaultTierOrder()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Base{
		log:         log,
		order:       order,
		store:       store,
		historical:  map[string]StateSet{},
		observedIDs: map[string]struct{}{},
		schema:      map[string]StateSet{},
		corrections: map[string]StateSet{},
	}
}

// LoadSnapshot fetches the live entity snapshot and installs it as the
// capability tier and the existence oracle.
func (b *Base) LoadSnapshot(ctx context.Context, provider CapabilityProvider) error {
	if provider == nil {
		return nil
	}
	states, err := provider.FetchStates(ctx)
	if err != nil {
		return apperrors.Create(apperrors.CodeCapabilityUnavailable).WithCause(err)
	}
	snapshot := make(map[string]EntityState, len(states))
	for _, st := range states {
		snapshot[st.EntityID] = st
	}

	b.mu.Lock()
	b.snapshot = snapshot
	b.haveSnapshot = true
	b.mu.Unlock()

	b.log.WithField("entities", len(snapshot)).Debug("entity snapshot loaded")
	return nil
}

// LoadHistory fetches observed states from the recorder. The context bounds
// the load; on failure or timeout the historical tier stays empty and the
// base keeps serving the other tiers.
func (b *Base) LoadHistory(ctx context.Context, provider HistoryProvider, days int) error {
	if provider == nil || days <= 0 {
		return nil
	}
	b.mu.Lock()
	b.historyProvider = provider
	b.historyDays = days
	b.mu.Unlock()

	observed, err := provider.ObservedStates(ctx, days)
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ErrHistoryTimeout(err)
		}
		return apperrors.Create(apperrors.CodeHistoryUnavailable).WithCause(err)
	}

	historical := make(map[string]StateSet, len(observed))
	ids := make(map[string]struct{}, len(observed))
	for id, states := range observed {
		ids[id] = struct{}{}
		if len(states) > 0 {
			historical[id] = newStateSet(states)
		}
	}

	b.mu.Lock()
	b.historical = historical
	b.observedIDs = ids
	b.mu.Unlock()

	b.log.WithField("entities", len(ids)).Debug("historical states loaded")
	return nil
}

// LoadSchema installs declared state vocabularies.
func (b *Base) LoadSchema(provider SchemaProvider) error {
	if provider == nil {
		return nil
	}
	declared, err := provider.DeclaredStates()
	if err != nil {
		return err
	}
	schema := make(map[string]StateSet, len(declared))
	for id, states := range declared {
		schema[id] = newStateSet(states)
	}

	b.mu.Lock()
	b.schema = schema
	b.mu.Unlock()
	return nil
}

// LoadCorrections installs previously persisted user confirmations.
func (b *Base) LoadCorrections() error {
	if b.store == nil {
		return nil
	}
	stored, err := b.store.Load()
	if err != nil {
		return err
	}
	corrections := make(map[string]StateSet, len(stored))
	for id, states := range stored {
		corrections[id] = newStateSet(states)
	}

	b.mu.Lock()
	b.corrections = corrections
	b.mu.Unlock()
	return nil
}

// Refresh re-fetches the live snapshot, re-runs the history load against the
// provider given to the last LoadHistory call, and re-reads persisted
// corrections. The caller's context bounds the whole refresh, history load
// included. The schema tier is file-backed and not touched.
func (b *Base) Refresh(ctx context.Context, provider CapabilityProvider) error {
	if err := b.LoadSnapshot(ctx, provider); err != nil {
		return err
	}
	b.mu.RLock()
	hist, days := b.historyProvider, b.historyDays
	b.mu.RUnlock()
	if hist != nil {
		if err := b.LoadHistory(ctx, hist, days); err != nil {
			return err
		}
	}
	return b.LoadCorrections()
}

// Domain returns the entity's domain.
func (b *Base) Domain(entityID string) string {
	return common.Domain(entityID)
}

// HasSnapshot reports whether a live snapshot was loaded. Existence checks
// are only meaningful when it was.
func (b *Base) HasSnapshot() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.haveSnapshot
}

// Exists reports whether the entity is present in the live snapshot.
func (b *Base) Exists(entityID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.snapshot[entityID]
	return ok
}

// HistoricallyExisted reports whether the entity appeared in the recorder
// window.
func (b *Base) HistoricallyExisted(entityID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.observedIDs[entityID]
	return ok
}

// EntityIDs returns every entity id in the live snapshot, for suggestion
// candidates. Sorted for determinism.
func (b *Base) EntityIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, 0, len(b.snapshot))
	for id := range b.snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ValidStates returns the merged valid-state set for the entity, or not-ok
// when its state space is not reliably enumerable. Only whitelisted domains
// and entities whose snapshot entry publishes a vocabulary get an opinion;
// the historical and schema tiers refine that answer but never create one,
// since a state seen or declared before does not make the space closed.
// "unknown" and "unavailable" are always part of a non-empty answer since
// any entity can report them.
func (b *Base) ValidStates(entityID string) (StateSet, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.enumerable(entityID) {
		return nil, false
	}

	var merged StateSet
	have := false
	for _, tier := range b.order {
		states, ok := b.tierStates(tier, entityID)
		if !ok {
			continue
		}
		if tier == TierUserConfirmed && have {
			for v := range states {
				merged[v] = struct{}{}
			}
			continue
		}
		merged = make(StateSet, len(states)+2)
		for v := range states {
			merged[v] = struct{}{}
		}
		have = true
	}
	if !have {
		return nil, false
	}
	merged["unknown"] = struct{}{}
	merged["unavailable"] = struct{}{}
	return merged, true
}

// enumerable reports whether the entity's state space is safe to validate:
// its domain is on the conservative whitelist, or the capability tier
// derived a vocabulary for it (enum sensors, select options, hvac modes).
// Callers hold the read lock.
func (b *Base) enumerable(entityID string) bool {
	if _, ok := DomainStates(common.Domain(entityID)); ok {
		return true
	}
	if st, ok := b.snapshot[entityID]; ok {
		if _, ok := capabilityStates(st); ok {
			return true
		}
	}
	return false
}

// tierStates answers one tier's opinion for one entity. Callers hold the
// read lock.
func (b *Base) tierStates(tier Tier, entityID string) (StateSet, bool) {
	switch tier {
	case TierHistorical:
		set, ok := b.historical[entityID]
		return set, ok
	case TierSchema:
		set, ok := b.schema[entityID]
		return set, ok
	case TierDomainDefault:
		states, ok := DomainStates(common.Domain(entityID))
		if !ok {
			return nil, false
		}
		return newStateSet(states), true
	case TierCapability:
		st, ok := b.snapshot[entityID]
		if !ok {
			return nil, false
		}
		return capabilityStates(st)
	case TierUserConfirmed:
		set, ok := b.corrections[entityID]
		return set, ok
	}
	return nil, false
}

// capabilityStates derives a state vocabulary from a live snapshot entry for
// the entity classes that publish one.
func capabilityStates(st EntityState) (StateSet, bool) {
	switch common.Domain(st.EntityID) {
	case "input_select", "select":
		return attributeStrings(st.Attributes, "options")
	case "climate":
		return attributeStrings(st.Attributes, "hvac_modes")
	case "sensor":
		if dc, _ := st.Attributes["device_class"].(string); dc == "enum" {
			return attributeStrings(st.Attributes, "options")
		}
	}
	return nil, false
}

func attributeStrings(attrs map[string]interface{}, key string) (StateSet, bool) {
	list, ok := attrs[key].([]interface{})
	if !ok || len(list) == 0 {
		return nil, false
	}
	set := make(StateSet, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			set[s] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil, false
	}
	return set, true
}

// Attributes returns the known attribute names for the entity: the live
// snapshot's keys plus the domain's well-known attributes. Not-ok without a
// snapshot entry, so attribute checks stay silent for unknown entities.
func (b *Base) Attributes(entityID string) (StateSet, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	st, ok := b.snapshot[entityID]
	if !ok {
		return nil, false
	}
	names := make(StateSet, len(st.Attributes)+8)
	for name := range st.Attributes {
		names[name] = struct{}{}
	}
	for _, name := range DomainAttributes(common.Domain(entityID)) {
		names[name] = struct{}{}
	}
	return names, true
}

// Learn records a user-confirmed state, extending the merged set and
// persisting through the correction store.
func (b *Base) Learn(entityID, state string) error {
	b.mu.Lock()
	set, ok := b.corrections[entityID]
	if !ok {
		set = StateSet{}
		b.corrections[entityID] = set
	}
	set[state] = struct{}{}
	b.mu.Unlock()

	if b.store == nil {
		return nil
	}
	return b.store.Add(entityID, state)
}
