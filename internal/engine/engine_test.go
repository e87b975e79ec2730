package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/home-assistant-tools/automation-lint-go/internal/knowledge"
	"github.com/home-assistant-tools/automation-lint-go/internal/reference"
)

// fakeKB is a minimal Knowledge implementation for engine tests.
type fakeKB struct {
	snapshot   bool
	exists     map[string]bool
	historical map[string]bool
	states     map[string][]string
	attributes map[string][]string
}

func (f *fakeKB) HasSnapshot() bool { return f.snapshot }

func (f *fakeKB) Exists(id string) bool { return f.exists[id] }

func (f *fakeKB) HistoricallyExisted(id string) bool { return f.historical[id] }

func (f *fakeKB) EntityIDs() []string {
	ids := make([]string, 0, len(f.exists))
	for id, present := range f.exists {
		if present {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f *fakeKB) ValidStates(id string) (knowledge.StateSet, bool) {
	states, ok := f.states[id]
	if !ok {
		return nil, false
	}
	set := make(knowledge.StateSet, len(states))
	for _, s := range states {
		set[s] = struct{}{}
	}
	return set, true
}

func (f *fakeKB) Attributes(id string) (knowledge.StateSet, bool) {
	attrs, ok := f.attributes[id]
	if !ok {
		return nil, false
	}
	set := make(knowledge.StateSet, len(attrs))
	for _, a := range attrs {
		set[a] = struct{}{}
	}
	return set, true
}

type fakeRegistry struct {
	ready        bool
	devices      map[string]bool
	areas        map[string]bool
	tags         map[string]bool
	integrations map[string]bool
}

func (f *fakeRegistry) Ready() bool                    { return f.ready }
func (f *fakeRegistry) DeviceExists(id string) bool    { return f.devices[id] }
func (f *fakeRegistry) AreaExists(id string) bool      { return f.areas[id] }
func (f *fakeRegistry) TagExists(id string) bool       { return f.tags[id] }
func (f *fakeRegistry) IntegrationExists(id string) bool {
	return f.integrations[id]
}

func householdKB() *fakeKB {
	return &fakeKB{
		snapshot: true,
		exists: map[string]bool{
			"binary_sensor.motion":  true,
			"person.matt":           true,
			"sensor.kitchen_temp":   true,
			"climate.living_room":   true,
			"binary_sensor.hallway": true,
		},
		historical: map[string]bool{
			"binary_sensor.front_door": true,
		},
		states: map[string][]string{
			"binary_sensor.motion": {"on", "off", "unknown", "unavailable"},
			"person.matt":          {"home", "not_home", "unknown", "unavailable"},
		},
		attributes: map[string][]string{
			"climate.living_room": {"hvac_modes", "current_temperature", "friendly_name"},
		},
	}
}

func direct(entity string, state, attr *string) reference.StateReference {
	return reference.StateReference{
		AutomationID:      "auto_1",
		EntityID:          entity,
		Type:              reference.ReferenceDirect,
		ExpectedState:     state,
		ExpectedAttribute: attr,
		Location:          "trigger[0]",
	}
}

func strptr(s string) *string { return &s }

func TestEntityNeverExisted(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	issues := e.Validate(direct("binary_sensor.frnt_door", nil, nil))

	require.Len(t, issues, 1)
	assert.Equal(t, IssueEntityNotFound, issues[0].Type)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Nil(t, issues[0].Suggestion)
}

func TestEntityNotFoundWithSuggestion(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	issues := e.Validate(direct("binary_sensor.motio", nil, nil))

	require.Len(t, issues, 1)
	assert.Equal(t, IssueEntityNotFound, issues[0].Type)
	require.NotNil(t, issues[0].Suggestion)
	assert.Equal(t, "binary_sensor.motion", *issues[0].Suggestion)
}

func TestEntityRemovedIsInfo(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	issues := e.Validate(direct("binary_sensor.front_door", strptr("on"), nil))

	require.Len(t, issues, 1)
	assert.Equal(t, IssueEntityRemoved, issues[0].Type)
	assert.Equal(t, SeverityInfo, issues[0].Severity)
}

func TestInvalidStateWithAliasSuggestion(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	issues := e.Validate(direct("person.matt", strptr("away"), nil))

	require.Len(t, issues, 1)
	assert.Equal(t, IssueInvalidState, issues[0].Type)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	require.NotNil(t, issues[0].Suggestion)
	assert.Equal(t, "not_home", *issues[0].Suggestion)
	assert.Equal(t, []string{"home", "not_home", "unavailable", "unknown"}, issues[0].ValidStates,
		"the valid set at decision time rides along with the issue")
}

func TestCaseMismatch(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	issues := e.Validate(direct("binary_sensor.motion", strptr("On"), nil))

	require.Len(t, issues, 1)
	assert.Equal(t, IssueCaseMismatch, issues[0].Type)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	require.NotNil(t, issues[0].Suggestion)
	assert.Equal(t, "on", *issues[0].Suggestion)
	assert.Contains(t, issues[0].ValidStates, "on")
}

func TestValidStateIsSilent(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	assert.Empty(t, e.Validate(direct("binary_sensor.motion", strptr("on"), nil)))
	assert.Empty(t, e.Validate(direct("binary_sensor.motion", strptr("unavailable"), nil)))
}

func TestWhitelistGateSilencesOpenDomains(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	// sensor.kitchen_temp exists but no tier has a state vocabulary for it.
	assert.Empty(t, e.Validate(direct("sensor.kitchen_temp", strptr("total garbage"), nil)))
}

func TestAttributeNotFound(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	issues := e.Validate(direct("climate.living_room", nil, strptr("curent_temperature")))

	require.Len(t, issues, 1)
	assert.Equal(t, IssueAttributeNotFound, issues[0].Type)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	require.NotNil(t, issues[0].Suggestion)
	assert.Equal(t, "current_temperature", *issues[0].Suggestion)
}

func TestAttributeKnown(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	assert.Empty(t, e.Validate(direct("climate.living_room", nil, strptr("hvac_modes"))))
}

func TestTemplateReferenceDowngraded(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	ref := direct("binary_sensor.frnt_door", nil, nil)
	ref.FromTemplate = true
	issues := e.Validate(ref)

	require.Len(t, issues, 1)
	assert.Equal(t, IssueEntityNotFound, issues[0].Type)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
}

func TestNoSnapshotSkipsExistence(t *testing.T) {
	t.Parallel()

	kb := householdKB()
	kb.snapshot = false
	e := New(kb, nil, 0, nil)

	// Existence cannot be judged, but the state vocabulary still can.
	assert.Empty(t, e.Validate(direct("binary_sensor.motion", nil, nil)))
	issues := e.Validate(direct("person.matt", strptr("away"), nil))
	require.Len(t, issues, 1)
	assert.Equal(t, IssueInvalidState, issues[0].Type)
}

func TestRegistryChecks(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistry{
		ready:        true,
		devices:      map[string]bool{"dev42": true},
		areas:        map[string]bool{"kitchen": true},
		tags:         map[string]bool{"tag1": true},
		integrations: map[string]bool{"entry1": true},
	}
	e := New(householdKB(), reg, 0, nil)

	ok := reference.StateReference{AutomationID: "a", EntityID: "dev42", Type: reference.ReferenceDevice}
	assert.Empty(t, e.Validate(ok))

	missing := reference.StateReference{AutomationID: "a", EntityID: "dev43", Type: reference.ReferenceDevice, Location: "trigger[0]"}
	issues := e.Validate(missing)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueEntityNotFound, issues[0].Type)
	assert.Equal(t, SeverityError, issues[0].Severity)

	area := reference.StateReference{AutomationID: "a", EntityID: "bathroom", Type: reference.ReferenceArea}
	require.Len(t, e.Validate(area), 1)

	tag := reference.StateReference{AutomationID: "a", EntityID: "tag1", Type: reference.ReferenceTag}
	assert.Empty(t, e.Validate(tag))
}

func TestRegistryNotReadyIsSilent(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	ref := reference.StateReference{AutomationID: "a", EntityID: "dev43", Type: reference.ReferenceDevice}
	assert.Empty(t, e.Validate(ref))
}

func TestValidateAllDeduplicates(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	ref := direct("person.matt", strptr("away"), nil)

	set := e.ValidateAll([]reference.StateReference{ref, ref, ref})
	assert.Equal(t, 1, set.Len())
}

func TestValidateAllIsIdempotent(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	refs := []reference.StateReference{
		direct("person.matt", strptr("away"), nil),
		direct("binary_sensor.motion", strptr("On"), nil),
		direct("binary_sensor.frnt_door", nil, nil),
	}

	first := e.ValidateAll(refs).List()
	second := e.ValidateAll(refs).List()
	assert.Equal(t, first, second)
}

func TestSetOrdering(t *testing.T) {
	t.Parallel()

	set := NewSet()
	set.Add(
		Issue{AutomationID: "b", Type: IssueInvalidState, Severity: SeverityWarning, Message: "w"},
		Issue{AutomationID: "a", Type: IssueEntityRemoved, Severity: SeverityInfo, Message: "i"},
		Issue{AutomationID: "c", Type: IssueEntityNotFound, Severity: SeverityError, Message: "e"},
	)

	list := set.List()
	require.Len(t, list, 3)
	assert.Equal(t, SeverityError, list[0].Severity)
	assert.Equal(t, SeverityWarning, list[1].Severity)
	assert.Equal(t, SeverityInfo, list[2].Severity)
	assert.Equal(t, "error", list[0].SeverityName)
}

func TestDistinctLocationsStayDistinct(t *testing.T) {
	t.Parallel()

	e := New(householdKB(), nil, 0, nil)
	a := direct("person.matt", strptr("away"), nil)
	b := direct("person.matt", strptr("away"), nil)
	b.Location = "condition[1]"

	set := e.ValidateAll([]reference.StateReference{a, b})
	assert.Equal(t, 2, set.Len())
}
