package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/home-assistant-tools/automation-lint-go/internal/reference"
)

// Strict template lint. Off by default; it only ever checks against closed
// builtin tables, so a custom filter registered by an integration will be
// flagged. That is the accepted cost of running strict mode.

var (
	filterUseRe = regexp.MustCompile(`\|\s*([A-Za-z_][A-Za-z0-9_]*)`)
	testUseRe   = regexp.MustCompile(`\bis\s+(?:not\s+)?([A-Za-z_][A-Za-z0-9_]*)`)
)

// LintTemplate checks one template fact for unbalanced delimiters and, when
// strict, for unknown filters and tests.
func LintTemplate(tmpl reference.TemplateRef, strict bool) []Issue {
	var issues []Issue

	base := Issue{
		AutomationID: tmpl.AutomationID,
		Location:     tmpl.Location,
	}

	if strings.Count(tmpl.Text, "{{") != strings.Count(tmpl.Text, "}}") {
		issue := base
		issue.Type = IssueTemplateSyntax
		issue.Severity = SeverityError
		issue.Message = "unbalanced {{ }} delimiters in template"
		issues = append(issues, issue)
	}
	if strings.Count(tmpl.Text, "{%") != strings.Count(tmpl.Text, "%}") {
		issue := base
		issue.Type = IssueTemplateSyntax
		issue.Severity = SeverityError
		issue.Message = "unbalanced {% %} delimiters in template"
		issues = append(issues, issue)
	}

	if !strict {
		return issues
	}

	for _, m := range filterUseRe.FindAllStringSubmatch(tmpl.Text, -1) {
		name := m[1]
		if !jinjaFilters[name] {
			issue := base
			issue.Type = IssueUnknownFilter
			issue.Severity = SeverityWarning
			issue.Message = fmt.Sprintf("unknown template filter %q", name)
			issues = append(issues, issue)
		}
	}
	for _, m := range testUseRe.FindAllStringSubmatch(tmpl.Text, -1) {
		name := m[1]
		if !jinjaTests[name] {
			issue := base
			issue.Type = IssueUnknownTest
			issue.Severity = SeverityWarning
			issue.Message = fmt.Sprintf("unknown template test %q", name)
			issues = append(issues, issue)
		}
	}
	return issues
}

// LintTemplates checks a batch of template facts.
func LintTemplates(templates []reference.TemplateRef, strict bool) []Issue {
	var issues []Issue
	for _, tmpl := range templates {
		issues = append(issues, LintTemplate(tmpl, strict)...)
	}
	return issues
}
