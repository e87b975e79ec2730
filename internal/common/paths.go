// Package common provides reusable primitives for walking and interrogating
// the untyped map/list structures produced by YAML decoding of automation
// configuration.
package common

import "fmt"

// RawData represents an untyped map structure from YAML parsing.
type RawData = map[string]interface{}

// AnyList represents an untyped list from YAML parsing.
type AnyList = []interface{}

// JoinPath creates a path by joining parent and child with a dot separator.
// Handles the case where parent is empty.
func JoinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return fmt.Sprintf("%s.%s", parent, child)
}

// IndexPath creates a path for a list index.
func IndexPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}

// KeyPath creates a path for a map key.
func KeyPath(parent, key string) string {
	return JoinPath(parent, key)
}
