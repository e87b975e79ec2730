// Package automation loads Home Assistant automation configuration from
// YAML. Automations keep their decoded tree untyped: the trigger, condition
// and action sections are heterogeneous and are walked by the reference
// extractor rather than bound to structs.
package automation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/home-assistant-tools/automation-lint-go/internal/common"
	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
)

// Automation is one automation's configuration tree.
type Automation struct {
	ID    string
	Alias string
	// Raw is the full decoded configuration, including the trigger,
	// condition and action sections.
	Raw common.RawData
}

// Name returns the best human identifier: alias, then id, then a fallback.
func (a Automation) Name() string {
	if a.Alias != "" {
		return a.Alias
	}
	if a.ID != "" {
		return a.ID
	}
	return "unnamed automation"
}

// Triggers returns the trigger section, accepting both the legacy `trigger`
// and the 2024+ `triggers` key.
func (a Automation) Triggers() interface{} {
	if v, ok := a.Raw["triggers"]; ok {
		return v
	}
	return a.Raw["trigger"]
}

// Conditions returns the condition section (either key form).
func (a Automation) Conditions() interface{} {
	if v, ok := a.Raw["conditions"]; ok {
		return v
	}
	return a.Raw["condition"]
}

// Actions returns the action section (either key form).
func (a Automation) Actions() interface{} {
	if v, ok := a.Raw["actions"]; ok {
		return v
	}
	return a.Raw["action"]
}

// fromRaw builds an Automation from a decoded map, pulling out id and alias.
func fromRaw(raw common.RawData, index int) Automation {
	a := Automation{Raw: raw}
	if id, ok := common.TryGetString(raw, "id"); ok {
		a.ID = id
	} else {
		a.ID = fmt.Sprintf("automation_%d", index)
	}
	if alias, ok := common.TryGetString(raw, "alias"); ok {
		a.Alias = alias
	}
	return a
}

// Parse decodes a YAML document containing either a single automation map
// or a list of automations (the automations.yaml form).
func Parse(data []byte) ([]Automation, error) {
	var root interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, apperrors.ErrYAMLSyntax("", err)
	}

	switch v := normalize(root).(type) {
	case common.RawData:
		return []Automation{fromRaw(v, 0)}, nil
	case common.AnyList:
		autos := make([]Automation, 0, len(v))
		for i, item := range v {
			if m, ok := item.(common.RawData); ok {
				autos = append(autos, fromRaw(m, i))
			}
		}
		return autos, nil
	case nil:
		return nil, nil
	default:
		return nil, apperrors.Create(apperrors.CodeYAMLSyntax).WithMessagef("expected automation map or list, got %T", root)
	}
}

// LoadFile reads and parses one automations YAML file.
func LoadFile(path string) ([]Automation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ErrFileRead(path, err)
	}
	return Parse(data)
}

// normalize converts the map[interface{}]interface{} trees some YAML
// decoders produce into map[string]interface{} so the walkers see one shape.
// yaml.v3 already decodes mappings with string keys, so this mostly guards
// against nested documents assembled programmatically.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	case map[interface{}]interface{}:
		out := make(common.RawData, len(v))
		for k, item := range v {
			out[fmt.Sprintf("%v", k)] = normalize(item)
		}
		return out
	case []interface{}:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	default:
		return value
	}
}
