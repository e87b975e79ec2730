package reference

// TriggerKind enumerates the trigger platforms the extractor understands.
// Unrecognized platforms extract nothing; they are never an error.
type TriggerKind int

const (
	TriggerUnknown TriggerKind = iota
	TriggerCalendar
	TriggerConversation
	TriggerDevice
	TriggerEvent
	TriggerGeoLocation
	TriggerHomeAssistant
	TriggerMQTT
	TriggerNumericState
	TriggerPersistentNotification
	TriggerState
	TriggerSun
	TriggerTag
	TriggerTemplate
	TriggerTime
	TriggerTimePattern
	TriggerWebhook
	TriggerZone
)

var triggerKinds = map[string]TriggerKind{
	"calendar":                TriggerCalendar,
	"conversation":            TriggerConversation,
	"device":                  TriggerDevice,
	"event":                   TriggerEvent,
	"geo_location":            TriggerGeoLocation,
	"homeassistant":           TriggerHomeAssistant,
	"mqtt":                    TriggerMQTT,
	"numeric_state":           TriggerNumericState,
	"persistent_notification": TriggerPersistentNotification,
	"state":                   TriggerState,
	"sun":                     TriggerSun,
	"tag":                     TriggerTag,
	"template":                TriggerTemplate,
	"time":                    TriggerTime,
	"time_pattern":            TriggerTimePattern,
	"webhook":                 TriggerWebhook,
	"zone":                    TriggerZone,
}

// ParseTriggerKind maps a platform string to its kind.
func ParseTriggerKind(platform string) TriggerKind {
	if kind, ok := triggerKinds[platform]; ok {
		return kind
	}
	return TriggerUnknown
}

// ConditionKind enumerates the condition types the extractor understands.
type ConditionKind int

const (
	ConditionUnknown ConditionKind = iota
	ConditionAnd
	ConditionOr
	ConditionNot
	ConditionState
	ConditionNumericState
	ConditionTemplate
	ConditionTime
	ConditionZone
	ConditionSun
	ConditionDevice
	ConditionTrigger
)

var conditionKinds = map[string]ConditionKind{
	"and":           ConditionAnd,
	"or":            ConditionOr,
	"not":           ConditionNot,
	"state":         ConditionState,
	"numeric_state": ConditionNumericState,
	"template":      ConditionTemplate,
	"time":          ConditionTime,
	"zone":          ConditionZone,
	"sun":           ConditionSun,
	"device":        ConditionDevice,
	"trigger":       ConditionTrigger,
}

// ParseConditionKind maps a condition string to its kind.
func ParseConditionKind(condition string) ConditionKind {
	if kind, ok := conditionKinds[condition]; ok {
		return kind
	}
	return ConditionUnknown
}
