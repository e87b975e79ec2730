package reference

import (
	"regexp"

	"github.com/home-assistant-tools/automation-lint-go/internal/common"
)

// Template scanning is best effort: it matches the common helper call shapes
// with literal arguments. Anything dynamic (variables, concatenation) is
// invisible to it, which is fine: extraction only ever under-reports.
var (
	statesCallRe  = regexp.MustCompile(`\bstates\(\s*['"]([a-z][a-z0-9_]*\.[A-Za-z0-9_]+)['"]\s*\)`)
	isStateRe     = regexp.MustCompile(`\bis_state\(\s*['"]([a-z][a-z0-9_]*\.[A-Za-z0-9_]+)['"]\s*,\s*['"]([^'"]*)['"]`)
	stateAttrRe   = regexp.MustCompile(`\bstate_attr\(\s*['"]([a-z][a-z0-9_]*\.[A-Za-z0-9_]+)['"]\s*,\s*['"]([A-Za-z0-9_]+)['"]`)
	isStateAttrRe = regexp.MustCompile(`\bis_state_attr\(\s*['"]([a-z][a-z0-9_]*\.[A-Za-z0-9_]+)['"]\s*,\s*['"]([A-Za-z0-9_]+)['"]`)
	expandCallRe  = regexp.MustCompile(`\bexpand\(\s*['"]([a-z][a-z0-9_]*\.[A-Za-z0-9_]+)['"]`)
	statesDotRe   = regexp.MustCompile(`\bstates\.([a-z][a-z0-9_]*)\.([a-z0-9_]+)\b`)
)

// scanTemplates walks the whole tree and, for every string containing Jinja
// markers, records a template fact and any entity references the template
// text reveals.
func (w *walker) scanTemplates(value interface{}, path string) {
	common.CollectStrings(value, path, func(s, p string) {
		if !common.ContainsTemplate(s) {
			return
		}
		w.facts.Templates = append(w.facts.Templates, TemplateRef{
			AutomationID: w.autoID,
			Location:     p,
			Text:         s,
		})
		w.templateRefs(s, p)
	})
}

// templateRefs extracts entity references from one template string.
func (w *walker) templateRefs(text, path string) {
	for _, m := range isStateRe.FindAllStringSubmatch(text, -1) {
		w.ref(StateReference{
			EntityID:      m[1],
			Type:          ReferenceDirect,
			ExpectedState: strptr(m[2]),
			Location:      path,
			FromTemplate:  true,
		})
	}
	for _, m := range isStateAttrRe.FindAllStringSubmatch(text, -1) {
		w.ref(StateReference{
			EntityID:          m[1],
			Type:              ReferenceDirect,
			ExpectedAttribute: strptr(m[2]),
			Location:          path,
			FromTemplate:      true,
		})
	}
	for _, m := range stateAttrRe.FindAllStringSubmatch(text, -1) {
		w.ref(StateReference{
			EntityID:          m[1],
			Type:              ReferenceDirect,
			ExpectedAttribute: strptr(m[2]),
			Location:          path,
			FromTemplate:      true,
		})
	}
	for _, m := range statesCallRe.FindAllStringSubmatch(text, -1) {
		w.ref(StateReference{EntityID: m[1], Type: ReferenceDirect, Location: path, FromTemplate: true})
	}
	for _, m := range expandCallRe.FindAllStringSubmatch(text, -1) {
		w.ref(StateReference{EntityID: m[1], Type: ReferenceDirect, Location: path, FromTemplate: true})
	}
	for _, m := range statesDotRe.FindAllStringSubmatch(text, -1) {
		w.ref(StateReference{EntityID: m[1] + "." + m[2], Type: ReferenceDirect, Location: path, FromTemplate: true})
	}
}
