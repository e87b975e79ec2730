// Package reference extracts typed reference facts from automation
// configuration trees. Extraction is a pure function of the input tree and
// the recursion budget: it never mutates the tree, never raises, and any
// malformed fragment simply contributes no facts.
package reference

// ReferenceType identifies which registry a reference resolves against.
type ReferenceType int

const (
	// ReferenceDirect is a plain entity id in domain.object_id form.
	ReferenceDirect ReferenceType = iota
	// ReferenceDevice is a device registry id.
	ReferenceDevice
	// ReferenceArea is an area registry id.
	ReferenceArea
	// ReferenceTag is a tag id.
	ReferenceTag
	// ReferenceIntegration is an integration (config entry) id.
	ReferenceIntegration
)

var referenceTypeNames = map[ReferenceType]string{
	ReferenceDirect:      "entity",
	ReferenceDevice:      "device",
	ReferenceArea:        "area",
	ReferenceTag:         "tag",
	ReferenceIntegration: "integration",
}

// String returns the display name of the reference type.
func (t ReferenceType) String() string {
	if name, ok := referenceTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// StateReference is one candidate fact extracted from configuration.
// Immutable once created; the validation engine consumes it read-only.
type StateReference struct {
	AutomationID   string
	AutomationName string
	// EntityID holds the referenced identifier. For non-direct types this
	// is a device/area/tag/integration id rather than domain.object_id.
	EntityID string
	Type     ReferenceType
	// ExpectedState is the state value the automation is conditioned on,
	// or nil when the reference carries no state expectation.
	ExpectedState *string
	// ExpectedAttribute is the attribute name the automation reads, or nil.
	ExpectedAttribute *string
	// Location is a path into the source tree, e.g. "trigger[2].to".
	// Used for reporting and deduplication, never for execution.
	Location string
	// FromTemplate marks references recovered by best-effort template
	// scanning. These are lower confidence than structural references and
	// the severity policy treats them conservatively.
	FromTemplate bool
}

// ServiceCall is one service invocation fact, consumed by the service
// validation path.
type ServiceCall struct {
	AutomationID   string
	AutomationName string
	// Service is the domain.service string as written.
	Service  string
	Location string
	// Data holds the literal (non-templated) keys of the call's data block.
	Data map[string]interface{}
}

// TemplateRef is one template string found in the tree, consumed by the
// strict template lint path.
type TemplateRef struct {
	AutomationID string
	Location     string
	Text         string
}

// Facts is everything extraction produced for one automation.
type Facts struct {
	References []StateReference
	Services   []ServiceCall
	Templates  []TemplateRef
}

func strptr(s string) *string { return &s }
