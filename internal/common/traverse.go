package common

// TraversalFunc is a callback for traversing YAML structures. It receives
// the current value and its path, and returns true to continue into children.
type TraversalFunc func(value interface{}, path string) bool

// TraverseValue recursively traverses a YAML value structure, calling the
// visitor for each value. The visitor can return false to skip children.
func TraverseValue(value interface{}, path string, visitor TraversalFunc) {
	if !visitor(value, path) {
		return
	}

	switch val := value.(type) {
	case RawData:
		for k, v := range val {
			TraverseValue(v, JoinPath(path, k), visitor)
		}
	case AnyList:
		for i, v := range val {
			TraverseValue(v, IndexPath(path, i), visitor)
		}
	}
}

// CollectStrings traverses a value and collects all string leaves with their
// paths.
func CollectStrings(value interface{}, path string, visit func(s, path string)) {
	TraverseValue(value, path, func(v interface{}, p string) bool {
		if s, ok := v.(string); ok {
			visit(s, p)
		}
		return true
	})
}
