package engine

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/home-assistant-tools/automation-lint-go/internal/knowledge"
	"github.com/home-assistant-tools/automation-lint-go/internal/logger"
	"github.com/home-assistant-tools/automation-lint-go/internal/reference"
)

// Knowledge is the query surface the engine validates against. Satisfied by
// *knowledge.Base.
type Knowledge interface {
	HasSnapshot() bool
	Exists(entityID string) bool
	HistoricallyExisted(entityID string) bool
	EntityIDs() []string
	ValidStates(entityID string) (knowledge.StateSet, bool)
	Attributes(entityID string) (knowledge.StateSet, bool)
}

// Registry answers existence for the non-entity reference types. These
// registries are small and enumerable, so a miss is always reportable.
// Satisfied by *registry.Snapshot.
type Registry interface {
	Ready() bool
	DeviceExists(id string) bool
	AreaExists(id string) bool
	TagExists(id string) bool
	IntegrationExists(id string) bool
}

// Engine validates reference facts. Validation is pure with respect to the
// knowledge snapshot at call time; the engine itself holds no mutable state.
type Engine struct {
	kb       Knowledge
	registry Registry
	cutoff   float64
	log      *logrus.Logger
}

// New creates an engine. registry may be nil when no registry data is
// available; non-direct references then go unchecked.
func New(kb Knowledge, registry Registry, cutoff float64, log *logrus.Logger) *Engine {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultSuggestionCutoff
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{kb: kb, registry: registry, cutoff: cutoff, log: log}
}

// ValidateAll validates a batch of references and returns the deduplicated
// issue set. Safe to call concurrently and idempotent for a fixed knowledge
// snapshot.
func (e *Engine) ValidateAll(refs []reference.StateReference) *Set {
	set := NewSet()
	for _, ref := range refs {
		set.Add(e.Validate(ref)...)
	}
	return set
}

// Validate checks one reference. A panic while validating contributes zero
// issues for that reference rather than aborting the batch.
func (e *Engine) Validate(ref reference.StateReference) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			e.log.WithFields(logrus.Fields{
				"entity": ref.EntityID,
				"panic":  r,
			}).Warn("validation failed for reference")
			issues = nil
		}
	}()

	if ref.Type != reference.ReferenceDirect {
		return e.validateRegistry(ref)
	}
	return e.validateDirect(ref)
}

// validateRegistry checks device/area/tag/integration ids against their
// registries. No whitelist applies here.
func (e *Engine) validateRegistry(ref reference.StateReference) []Issue {
	if e.registry == nil || !e.registry.Ready() {
		return nil
	}
	exists := true
	switch ref.Type {
	case reference.ReferenceDevice:
		exists = e.registry.DeviceExists(ref.EntityID)
	case reference.ReferenceArea:
		exists = e.registry.AreaExists(ref.EntityID)
	case reference.ReferenceTag:
		exists = e.registry.TagExists(ref.EntityID)
	case reference.ReferenceIntegration:
		exists = e.registry.IntegrationExists(ref.EntityID)
	}
	if exists {
		return nil
	}
	return []Issue{e.issue(ref, IssueEntityNotFound, SeverityError,
		fmt.Sprintf("%s %q not found in the %s registry", ref.Type, ref.EntityID, ref.Type), nil)}
}

// validateDirect runs the existence, state and attribute checks for a plain
// entity reference.
func (e *Engine) validateDirect(ref reference.StateReference) []Issue {
	var issues []Issue

	if e.kb.HasSnapshot() && !e.kb.Exists(ref.EntityID) {
		if e.kb.HistoricallyExisted(ref.EntityID) {
			issues = append(issues, e.issue(ref, IssueEntityRemoved, SeverityInfo,
				fmt.Sprintf("entity %q no longer exists but was seen in recent history", ref.EntityID), nil))
			return issues
		}
		severity := SeverityError
		if ref.FromTemplate {
			// Template scanning is best effort, so a miss there is less
			// certain than a structural reference.
			severity = SeverityWarning
		}
		var suggestion *string
		if match, ok := BestMatch(ref.EntityID, e.kb.EntityIDs(), e.cutoff); ok {
			suggestion = &match
		}
		issues = append(issues, e.issue(ref, IssueEntityNotFound, severity,
			fmt.Sprintf("entity %q not found", ref.EntityID), suggestion))
		return issues
	}

	if ref.ExpectedState != nil {
		if issue, ok := e.checkState(ref); ok {
			issues = append(issues, issue)
		}
	}
	if ref.ExpectedAttribute != nil {
		if issue, ok := e.checkAttribute(ref); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// checkState validates an expected state value against the merged valid set.
// No opinion from the knowledge base means no issue of any kind.
func (e *Engine) checkState(ref reference.StateReference) (Issue, bool) {
	valid, ok := e.kb.ValidStates(ref.EntityID)
	if !ok {
		return Issue{}, false
	}
	state := *ref.ExpectedState
	if valid.Has(state) {
		return Issue{}, false
	}

	// A case-insensitive hit is a capitalization slip, not a wrong state.
	for candidate := range valid {
		if strings.EqualFold(candidate, state) {
			suggestion := candidate
			iss := e.issue(ref, IssueCaseMismatch, SeverityWarning,
				fmt.Sprintf("state %q for %q differs from valid state %q only in case", state, ref.EntityID, candidate),
				&suggestion)
			iss.ValidStates = valid.Values()
			return iss, true
		}
	}

	var suggestion *string
	if canonical, ok := stateAliases[strings.ToLower(state)]; ok && valid.Has(canonical) {
		suggestion = &canonical
	} else if match, ok := BestMatch(state, valid.Values(), e.cutoff); ok {
		suggestion = &match
	}
	iss := e.issue(ref, IssueInvalidState, SeverityWarning,
		fmt.Sprintf("state %q is not a valid state for %q (valid: %s)",
			state, ref.EntityID, strings.Join(valid.Values(), ", ")),
		suggestion)
	iss.ValidStates = valid.Values()
	return iss, true
}

// checkAttribute validates an expected attribute name against the union of
// live attributes and the domain's default attribute table.
func (e *Engine) checkAttribute(ref reference.StateReference) (Issue, bool) {
	known, ok := e.kb.Attributes(ref.EntityID)
	if !ok {
		return Issue{}, false
	}
	attr := *ref.ExpectedAttribute
	if known.Has(attr) {
		return Issue{}, false
	}
	var suggestion *string
	if match, ok := BestMatch(attr, known.Values(), e.cutoff); ok {
		suggestion = &match
	}
	return e.issue(ref, IssueAttributeNotFound, SeverityWarning,
		fmt.Sprintf("attribute %q not found on %q", attr, ref.EntityID), suggestion), true
}

func (e *Engine) issue(ref reference.StateReference, typ IssueType, sev Severity, msg string, suggestion *string) Issue {
	return Issue{
		AutomationID:   ref.AutomationID,
		AutomationName: ref.AutomationName,
		EntityID:       ref.EntityID,
		Type:           typ,
		Severity:       sev,
		Message:        msg,
		Suggestion:     suggestion,
		Location:       ref.Location,
	}
}
