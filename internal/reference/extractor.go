package reference

import (
	"github.com/sirupsen/logrus"

	"github.com/home-assistant-tools/automation-lint-go/internal/automation"
	"github.com/home-assistant-tools/automation-lint-go/internal/common"
	"github.com/home-assistant-tools/automation-lint-go/internal/logger"
)

// DefaultMaxDepth bounds recursion into nested condition and action blocks.
const DefaultMaxDepth = 20

// Extractor walks automation trees and produces Facts.
type Extractor struct {
	maxDepth int
	log      *logrus.Logger
}

// New creates an extractor. A non-positive maxDepth falls back to the
// default; a nil logger discards.
func New(maxDepth int, log *logrus.Logger) *Extractor {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Extractor{maxDepth: maxDepth, log: log}
}

// Extract walks one automation and returns every reference fact found.
// A panic while walking one automation is contained here: the automation
// contributes zero facts and the failure is logged, so one malformed
// definition never poisons a batch.
func (e *Extractor) Extract(a automation.Automation) (facts Facts) {
	defer func() {
		if r := recover(); r != nil {
			e.log.WithFields(logrus.Fields{
				"automation": a.ID,
				"panic":      r,
			}).Warn("reference extraction failed, skipping automation")
			facts = Facts{}
		}
	}()

	w := &walker{
		autoID:   a.ID,
		autoName: a.Name(),
		maxDepth: e.maxDepth,
	}

	w.walkTriggers(a.Triggers(), "trigger")
	w.walkConditions(a.Conditions(), "condition", e.maxDepth)
	w.walkActions(a.Actions(), "action", e.maxDepth)
	w.scanTemplates(a.Raw, "")

	return w.facts
}

// ExtractAll runs extraction over a batch. Order of facts follows input
// order; failed automations contribute nothing.
func (e *Extractor) ExtractAll(autos []automation.Automation) Facts {
	var all Facts
	for _, a := range autos {
		facts := e.Extract(a)
		all.References = append(all.References, facts.References...)
		all.Services = append(all.Services, facts.Services...)
		all.Templates = append(all.Templates, facts.Templates...)
	}
	return all
}

// walker carries per-automation extraction state.
type walker struct {
	autoID   string
	autoName string
	maxDepth int
	facts    Facts
}

// ref appends one reference fact. Templated identifiers cannot be resolved
// statically and are dropped here rather than reported as unknown entities.
func (w *walker) ref(r StateReference) {
	if r.EntityID == "" || common.ContainsTemplate(r.EntityID) {
		return
	}
	r.AutomationID = w.autoID
	r.AutomationName = w.autoName
	w.facts.References = append(w.facts.References, r)
}

// directRefs emits one bare existence reference per entity id.
func (w *walker) directRefs(value interface{}, path string) {
	ids := common.StringOrList(value)
	for i, id := range ids {
		loc := path
		if len(ids) > 1 {
			loc = common.IndexPath(path, i)
		}
		w.ref(StateReference{EntityID: id, Type: ReferenceDirect, Location: loc})
	}
}

// typedRefs emits one bare reference per id with the given type.
func (w *walker) typedRefs(value interface{}, path string, typ ReferenceType) {
	ids := common.StringOrList(value)
	for i, id := range ids {
		loc := path
		if len(ids) > 1 {
			loc = common.IndexPath(path, i)
		}
		w.ref(StateReference{EntityID: id, Type: typ, Location: loc})
	}
}

// stateRefs emits the cross product of entities and expected states from the
// named fields. When attribute is set the state values describe the
// attribute, not the entity state, so only the attribute expectation is
// recorded. Entities with no state fields still get an existence reference.
func (w *walker) stateRefs(block common.RawData, path string, stateFields []string) {
	entities := common.StringOrList(block["entity_id"])
	if len(entities) == 0 {
		return
	}

	attr, hasAttr := common.TryGetString(block, "attribute")
	var attrPtr *string
	if hasAttr && !common.ContainsTemplate(attr) {
		attrPtr = strptr(attr)
	}

	emitted := false
	if !hasAttr {
		for _, field := range stateFields {
			raw, exists := block[field]
			if !exists {
				continue
			}
			values := common.ScalarOrList(raw)
			_, isList := raw.(common.AnyList)
			for j, state := range values {
				if common.ContainsTemplate(state) {
					continue
				}
				loc := common.KeyPath(path, field)
				if isList {
					loc = common.IndexPath(loc, j)
				}
				for _, entity := range entities {
					w.ref(StateReference{
						EntityID:      entity,
						Type:          ReferenceDirect,
						ExpectedState: strptr(state),
						Location:      loc,
					})
					emitted = true
				}
			}
		}
	}

	if !emitted {
		for i, entity := range entities {
			loc := common.KeyPath(path, "entity_id")
			if len(entities) > 1 {
				loc = common.IndexPath(loc, i)
			}
			w.ref(StateReference{
				EntityID:          entity,
				Type:              ReferenceDirect,
				ExpectedAttribute: attrPtr,
				Location:          loc,
			})
		}
	}
}
