package reference

import (
	"github.com/home-assistant-tools/automation-lint-go/internal/common"
)

// walkConditions handles a condition section: a single map, a list of
// conditions, or a template shorthand string. Recursion into and/or/not
// blocks consumes the depth budget; when it runs out the remaining subtree
// is simply not walked.
func (w *walker) walkConditions(value interface{}, path string, depth int) {
	if depth <= 0 {
		return
	}
	switch v := value.(type) {
	case common.RawData:
		w.walkCondition(v, path, depth)
	case common.AnyList:
		for i, item := range v {
			w.walkConditions(item, common.IndexPath(path, i), depth)
		}
	case string:
		// Template shorthand; covered by the whole-tree template scan.
	}
}

// walkCondition extracts references from one condition block. Blocks
// carrying enabled: false are never evaluated and are skipped.
func (w *walker) walkCondition(c common.RawData, path string, depth int) {
	if enabled, ok := common.TryGetBool(c, "enabled"); ok && !enabled {
		return
	}
	kind, ok := common.TryGetString(c, "condition")
	if !ok {
		// Shorthand state condition: {entity_id: ..., state: ...}.
		if _, has := c["entity_id"]; has {
			w.stateRefs(c, path, []string{"state"})
		}
		return
	}

	switch ParseConditionKind(kind) {
	case ConditionAnd, ConditionOr, ConditionNot:
		w.walkConditions(c["conditions"], common.KeyPath(path, "conditions"), depth-1)
	case ConditionState:
		w.stateRefs(c, path, []string{"state"})
	case ConditionNumericState:
		w.numericRefs(c, path)
	case ConditionZone:
		w.directRefs(c["entity_id"], common.KeyPath(path, "entity_id"))
		w.directRefs(c["zone"], common.KeyPath(path, "zone"))
	case ConditionTime:
		for _, field := range []string{"after", "before"} {
			if s, ok := common.TryGetString(c, field); ok && common.IsEntityID(s) {
				w.ref(StateReference{EntityID: s, Type: ReferenceDirect, Location: common.KeyPath(path, field)})
			}
		}
	case ConditionDevice:
		w.typedRefs(c["device_id"], common.KeyPath(path, "device_id"), ReferenceDevice)
		if id, ok := common.TryGetString(c, "entity_id"); ok && common.IsEntityID(id) {
			w.ref(StateReference{EntityID: id, Type: ReferenceDirect, Location: common.KeyPath(path, "entity_id")})
		}
	case ConditionSun, ConditionTemplate, ConditionTrigger:
		// Nothing structural; templates are scanned separately.
	}
}
