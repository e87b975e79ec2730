package common

import (
	"regexp"
	"strings"
)

// entityIDPattern matches the domain.object_id form Home Assistant uses for
// entity identifiers.
var entityIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[A-Za-z0-9_]+$`)

// IsEntityID reports whether s looks like a domain.object_id identifier.
func IsEntityID(s string) bool {
	return entityIDPattern.MatchString(s)
}

// Domain returns the domain portion of an entity id, or "" if s is not in
// domain.object_id form.
func Domain(entityID string) string {
	idx := strings.IndexByte(entityID, '.')
	if idx <= 0 {
		return ""
	}
	return entityID[:idx]
}

// SplitEntityID splits an entity id into domain and object id.
func SplitEntityID(entityID string) (domain, objectID string) {
	idx := strings.IndexByte(entityID, '.')
	if idx <= 0 {
		return "", entityID
	}
	return entityID[:idx], entityID[idx+1:]
}

// ContainsTemplate reports whether a string contains Jinja2 template markers.
func ContainsTemplate(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}
