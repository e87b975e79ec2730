package common

import "fmt"

// TryGetMap attempts to extract a map from a parent map at the given key.
func TryGetMap(parent RawData, key string) (RawData, bool) {
	if value, exists := parent[key]; exists {
		if m, ok := value.(RawData); ok {
			return m, true
		}
	}
	return nil, false
}

// TryGetString attempts to extract a string from a parent map at the given key.
func TryGetString(parent RawData, key string) (string, bool) {
	if value, exists := parent[key]; exists {
		if s, ok := value.(string); ok {
			return s, true
		}
	}
	return "", false
}

// TryGetList attempts to extract a list from a parent map at the given key.
func TryGetList(parent RawData, key string) (AnyList, bool) {
	if value, exists := parent[key]; exists {
		if l, ok := value.(AnyList); ok {
			return l, true
		}
	}
	return nil, false
}

// TryGetBool attempts to extract a bool from a parent map at the given key.
func TryGetBool(parent RawData, key string) (result, found bool) {
	if value, exists := parent[key]; exists {
		if b, ok := value.(bool); ok {
			return b, true
		}
	}
	return false, false
}

// AsString renders a scalar YAML value as its string form.
// Numbers and booleans are stringified the way Home Assistant compares
// them against state strings; non-scalar values report not-ok.
func AsString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	case int:
		return fmt.Sprintf("%d", v), true
	case int64:
		return fmt.Sprintf("%d", v), true
	case float64:
		// YAML decodes 21 as int, 21.5 as float64. Trim trailing zeros the
		// way state strings are written.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v)), true
		}
		return fmt.Sprintf("%g", v), true
	default:
		return "", false
	}
}

// StringOrList normalizes a value that may be a single string or a list of
// strings into a slice. Non-string entries are skipped.
func StringOrList(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case AnyList:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ScalarOrList is like StringOrList but stringifies scalar entries, so a
// numeric `to:` value or a list mixing strings and numbers still yields the
// comparable state strings.
func ScalarOrList(value interface{}) []string {
	switch v := value.(type) {
	case AnyList:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := AsString(item); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := AsString(value); ok {
			return []string{s}
		}
		return nil
	}
}
