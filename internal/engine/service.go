package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/home-assistant-tools/automation-lint-go/internal/common"
	"github.com/home-assistant-tools/automation-lint-go/internal/reference"
)

// ServiceField describes one declared parameter of a service.
type ServiceField struct {
	Required bool
}

// ServiceSchema is one service's declared parameters.
type ServiceSchema struct {
	Fields map[string]ServiceField
}

// ServiceCatalog answers which services exist and what parameters they
// declare. Satisfied by the Home Assistant client's service listing.
type ServiceCatalog interface {
	Ready() bool
	Service(name string) (ServiceSchema, bool)
}

// targetingFields are accepted by essentially every service call and are
// not declared per-service.
var targetingFields = map[string]bool{
	"entity_id": true, "device_id": true, "area_id": true,
	"floor_id": true, "label_id": true,
}

// ValidateServices checks service facts against the catalog. Only runs in
// strict mode; the catalog must be loaded or nothing is reported.
func ValidateServices(calls []reference.ServiceCall, catalog ServiceCatalog) []Issue {
	if catalog == nil || !catalog.Ready() {
		return nil
	}
	var issues []Issue
	for _, call := range calls {
		issues = append(issues, validateService(call, catalog)...)
	}
	return issues
}

func validateService(call reference.ServiceCall, catalog ServiceCatalog) []Issue {
	base := Issue{
		AutomationID:   call.AutomationID,
		AutomationName: call.AutomationName,
		Location:       call.Location,
	}

	schema, ok := catalog.Service(call.Service)
	if !ok {
		issue := base
		issue.Type = IssueServiceNotFound
		issue.Severity = SeverityError
		issue.Message = fmt.Sprintf("service %q not found", call.Service)
		return []Issue{issue}
	}

	var issues []Issue
	for name, field := range schema.Fields {
		if !field.Required {
			continue
		}
		if _, present := call.Data[name]; !present {
			issue := base
			issue.Type = IssueMissingRequired
			issue.Severity = SeverityWarning
			issue.Message = fmt.Sprintf("service %q call is missing required parameter %q", call.Service, name)
			issues = append(issues, issue)
		}
	}

	names := make([]string, 0, len(call.Data))
	for name := range call.Data {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if targetingFields[name] {
			continue
		}
		if common.ContainsTemplate(name) {
			continue
		}
		if _, declared := schema.Fields[name]; !declared {
			issue := base
			issue.Type = IssueUnknownParam
			issue.Severity = SeverityWarning
			issue.Message = fmt.Sprintf("service %q does not declare parameter %q", call.Service, name)
			if match, ok := BestMatch(name, fieldNames(schema), DefaultSuggestionCutoff); ok {
				issue.Suggestion = &match
			}
			issues = append(issues, issue)
		}
	}
	return issues
}

func fieldNames(schema ServiceSchema) []string {
	names := make([]string, 0, len(schema.Fields))
	for name := range schema.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServiceDomain returns the domain half of a service name.
func ServiceDomain(service string) string {
	if idx := strings.IndexByte(service, '.'); idx > 0 {
		return service[:idx]
	}
	return ""
}
