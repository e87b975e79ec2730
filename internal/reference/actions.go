package reference

import (
	"strings"

	"github.com/home-assistant-tools/automation-lint-go/internal/common"
)

// walkActions handles an action section: a single map or a list of steps.
// Nested blocks (choose, if, repeat, parallel) consume the depth budget.
func (w *walker) walkActions(value interface{}, path string, depth int) {
	if depth <= 0 {
		return
	}
	switch v := value.(type) {
	case common.RawData:
		w.walkAction(v, path, depth)
	case common.AnyList:
		for i, item := range v {
			if m, ok := item.(common.RawData); ok {
				w.walkAction(m, common.IndexPath(path, i), depth)
			}
		}
	}
}

// walkAction extracts references and service facts from one action step.
// Steps carrying enabled: false never run and are skipped.
func (w *walker) walkAction(a common.RawData, path string, depth int) {
	if enabled, ok := common.TryGetBool(a, "enabled"); ok && !enabled {
		return
	}
	if svc, ok := serviceName(a); ok {
		w.serviceCall(a, svc, path)
	}

	w.targetRefs(a, path)

	switch {
	case a["choose"] != nil:
		w.walkChoose(a, path, depth)
	case a["if"] != nil:
		w.walkConditions(a["if"], common.KeyPath(path, "if"), depth-1)
		w.walkActions(a["then"], common.KeyPath(path, "then"), depth-1)
		w.walkActions(a["else"], common.KeyPath(path, "else"), depth-1)
	case a["repeat"] != nil:
		w.walkRepeat(a["repeat"], common.KeyPath(path, "repeat"), depth)
	case a["parallel"] != nil:
		w.walkActions(a["parallel"], common.KeyPath(path, "parallel"), depth-1)
	case a["sequence"] != nil:
		w.walkActions(a["sequence"], common.KeyPath(path, "sequence"), depth-1)
	case a["wait_for_trigger"] != nil:
		w.walkTriggers(a["wait_for_trigger"], common.KeyPath(path, "wait_for_trigger"))
	}

	if scene, ok := common.TryGetString(a, "scene"); ok && common.IsEntityID(scene) {
		w.ref(StateReference{EntityID: scene, Type: ReferenceDirect, Location: common.KeyPath(path, "scene")})
	}
}

// serviceName resolves the service of a step, accepting both the legacy
// `service` and the 2024+ `action` key. Templated names are not statically
// checkable and report not-ok.
func serviceName(a common.RawData) (string, bool) {
	name, ok := common.TryGetString(a, "service")
	if !ok {
		name, ok = common.TryGetString(a, "action")
	}
	if !ok || common.ContainsTemplate(name) || !strings.Contains(name, ".") {
		return "", false
	}
	return name, true
}

// serviceCall records one service fact with its literal data keys.
func (w *walker) serviceCall(a common.RawData, svc, path string) {
	call := ServiceCall{
		AutomationID:   w.autoID,
		AutomationName: w.autoName,
		Service:        svc,
		Location:       path,
	}
	if data, ok := common.TryGetMap(a, "data"); ok {
		call.Data = data
	}
	w.facts.Services = append(w.facts.Services, call)
}

// targetRefs extracts entity, device and area references from a step's
// target block and its loose entity_id forms.
func (w *walker) targetRefs(a common.RawData, path string) {
	if target, ok := common.TryGetMap(a, "target"); ok {
		w.directRefs(target["entity_id"], common.KeyPath(path, "target.entity_id"))
		w.typedRefs(target["device_id"], common.KeyPath(path, "target.device_id"), ReferenceDevice)
		w.typedRefs(target["area_id"], common.KeyPath(path, "target.area_id"), ReferenceArea)
	}
	w.directRefs(a["entity_id"], common.KeyPath(path, "entity_id"))
	if data, ok := common.TryGetMap(a, "data"); ok {
		w.directRefs(data["entity_id"], common.KeyPath(path, "data.entity_id"))
	}
}

// walkChoose handles choose blocks: a list of {conditions, sequence} options
// plus an optional default sequence.
func (w *walker) walkChoose(a common.RawData, path string, depth int) {
	if options, ok := common.TryGetList(a, "choose"); ok {
		for i, item := range options {
			opt, ok := item.(common.RawData)
			if !ok {
				continue
			}
			optPath := common.IndexPath(common.KeyPath(path, "choose"), i)
			w.walkConditions(opt["conditions"], common.KeyPath(optPath, "conditions"), depth-1)
			w.walkActions(opt["sequence"], common.KeyPath(optPath, "sequence"), depth-1)
		}
	}
	w.walkActions(a["default"], common.KeyPath(path, "default"), depth-1)
}

// walkRepeat handles repeat blocks with while/until conditions and a nested
// sequence.
func (w *walker) walkRepeat(value interface{}, path string, depth int) {
	r, ok := value.(common.RawData)
	if !ok {
		return
	}
	w.walkConditions(r["while"], common.KeyPath(path, "while"), depth-1)
	w.walkConditions(r["until"], common.KeyPath(path, "until"), depth-1)
	w.walkActions(r["sequence"], common.KeyPath(path, "sequence"), depth-1)
}
