// Package engine turns extracted reference facts plus knowledge base answers
// into validation issues. The rules are deliberately conservative: when the
// knowledge base has no opinion the engine says nothing, and a suggestion is
// only offered when it is unambiguous.
package engine

import (
	"sort"
)

// IssueType is the closed set of high-confidence issue categories. Anything
// with ambiguous confidence is excluded from this enum entirely rather than
// added and toggled off.
type IssueType string

const (
	IssueEntityNotFound     IssueType = "entity_not_found"
	IssueEntityRemoved      IssueType = "entity_removed"
	IssueInvalidState       IssueType = "invalid_state"
	IssueCaseMismatch       IssueType = "case_mismatch"
	IssueAttributeNotFound  IssueType = "attribute_not_found"
	IssueServiceNotFound    IssueType = "service_not_found"
	IssueMissingRequired    IssueType = "missing_required_param"
	IssueUnknownParam       IssueType = "unknown_param"
	IssueTemplateSyntax     IssueType = "syntax_error"
	IssueUnknownFilter      IssueType = "unknown_filter"
	IssueUnknownTest        IssueType = "unknown_test"
)

// Severity ranks issues. Higher is more severe.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Issue is one reported problem. ValidStates carries the merged valid set at
// the moment a state check failed, so a report reader can see what the
// knowledge base believed without reparsing the message. It is informational
// and takes no part in the dedup Key.
type Issue struct {
	AutomationID   string    `json:"automation_id"`
	AutomationName string    `json:"automation_name,omitempty"`
	EntityID       string    `json:"entity_id,omitempty"`
	Type           IssueType `json:"issue_type"`
	Severity       Severity  `json:"-"`
	SeverityName   string    `json:"severity"`
	Message        string    `json:"message"`
	Suggestion     *string   `json:"suggestion,omitempty"`
	ValidStates    []string  `json:"valid_states_snapshot,omitempty"`
	Location       string    `json:"location,omitempty"`
}

// Key is the identity of an issue for deduplication. Two issues with equal
// keys are the same issue regardless of which code path produced them.
type Key struct {
	AutomationID string
	EntityID     string
	Type         IssueType
	Location     string
	Message      string
}

// Key returns the dedup identity.
func (i Issue) Key() Key {
	return Key{
		AutomationID: i.AutomationID,
		EntityID:     i.EntityID,
		Type:         i.Type,
		Location:     i.Location,
		Message:      i.Message,
	}
}

// Set deduplicates issues by Key. Results must pass through a Set before
// being surfaced; a plain list is not an acceptable result shape.
type Set struct {
	byKey map[Key]Issue
}

// NewSet creates an empty issue set.
func NewSet() *Set {
	return &Set{byKey: map[Key]Issue{}}
}

// Add inserts issues, dropping duplicates.
func (s *Set) Add(issues ...Issue) {
	for _, issue := range issues {
		s.byKey[issue.Key()] = issue
	}
}

// Len returns the number of distinct issues.
func (s *Set) Len() int { return len(s.byKey) }

// List returns the issues ordered by severity (highest first), then
// automation, location and message for determinism.
func (s *Set) List() []Issue {
	out := make([]Issue, 0, len(s.byKey))
	for _, issue := range s.byKey {
		issue.SeverityName = issue.Severity.String()
		out = append(out, issue)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		if out[i].AutomationID != out[j].AutomationID {
			return out[i].AutomationID < out[j].AutomationID
		}
		if out[i].Location != out[j].Location {
			return out[i].Location < out[j].Location
		}
		return out[i].Message < out[j].Message
	})
	return out
}
