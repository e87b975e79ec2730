package reference

import (
	"github.com/home-assistant-tools/automation-lint-go/internal/common"
)

// walkTriggers handles the trigger section, which may be a single map or a
// list of maps.
func (w *walker) walkTriggers(value interface{}, path string) {
	switch v := value.(type) {
	case common.RawData:
		w.walkTrigger(v, path)
	case common.AnyList:
		for i, item := range v {
			if m, ok := item.(common.RawData); ok {
				w.walkTrigger(m, common.IndexPath(path, i))
			}
		}
	}
}

// walkTrigger extracts references from one trigger block. Blocks carrying
// enabled: false never fire and are skipped.
func (w *walker) walkTrigger(t common.RawData, path string) {
	if enabled, ok := common.TryGetBool(t, "enabled"); ok && !enabled {
		return
	}
	platform, ok := common.TryGetString(t, "platform")
	if !ok {
		// 2024+ syntax spells the platform under `trigger`.
		platform, _ = common.TryGetString(t, "trigger")
	}

	switch ParseTriggerKind(platform) {
	case TriggerState:
		w.stateRefs(t, path, []string{"to", "from", "not_to", "not_from"})
	case TriggerNumericState:
		w.numericRefs(t, path)
	case TriggerZone:
		w.directRefs(t["entity_id"], common.KeyPath(path, "entity_id"))
		w.directRefs(t["zone"], common.KeyPath(path, "zone"))
	case TriggerGeoLocation:
		w.directRefs(t["zone"], common.KeyPath(path, "zone"))
	case TriggerCalendar:
		w.directRefs(t["entity_id"], common.KeyPath(path, "entity_id"))
	case TriggerTime:
		w.timeEntityRefs(t["at"], common.KeyPath(path, "at"))
	case TriggerTag:
		w.typedRefs(t["tag_id"], common.KeyPath(path, "tag_id"), ReferenceTag)
	case TriggerDevice:
		w.typedRefs(t["device_id"], common.KeyPath(path, "device_id"), ReferenceDevice)
	case TriggerEvent, TriggerHomeAssistant, TriggerMQTT, TriggerSun,
		TriggerTemplate, TriggerTimePattern, TriggerWebhook,
		TriggerConversation, TriggerPersistentNotification:
		// Nothing structural to extract. Template triggers are covered by
		// the whole-tree template scan.
	}
}

// numericRefs handles numeric_state blocks, whose above/below fields may
// themselves name a sensor entity used as the threshold.
func (w *walker) numericRefs(block common.RawData, path string) {
	entities := common.StringOrList(block["entity_id"])
	attr, hasAttr := common.TryGetString(block, "attribute")
	var attrPtr *string
	if hasAttr && !common.ContainsTemplate(attr) {
		attrPtr = strptr(attr)
	}
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
	for _, field := range []string{"above", "below"} {
		if s, ok := common.TryGetString(block, field); ok && common.IsEntityID(s) {
			w.ref(StateReference{EntityID: s, Type: ReferenceDirect, Location: common.KeyPath(path, field)})
		}
	}
}

// timeEntityRefs handles time trigger `at` values, which may be fixed times,
// input_datetime/sensor entity ids, or maps carrying an entity_id plus
// offset. Fixed clock times extract nothing.
func (w *walker) timeEntityRefs(value interface{}, path string) {
	switch v := value.(type) {
	case string:
		if common.IsEntityID(v) {
			w.ref(StateReference{EntityID: v, Type: ReferenceDirect, Location: path})
		}
	case common.RawData:
		if id, ok := common.TryGetString(v, "entity_id"); ok && common.IsEntityID(id) {
			w.ref(StateReference{EntityID: id, Type: ReferenceDirect, Location: common.KeyPath(path, "entity_id")})
		}
	case common.AnyList:
		for i, item := range v {
			w.timeEntityRefs(item, common.IndexPath(path, i))
		}
	}
}
