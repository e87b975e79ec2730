package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  interface{}
		want   string
		wantOk bool
	}{
		{name: "string", value: "on", want: "on", wantOk: true},
		{name: "bool true", value: true, want: "true", wantOk: true},
		{name: "bool false", value: false, want: "false", wantOk: true},
		{name: "int", value: 21, want: "21", wantOk: true},
		{name: "whole float", value: 21.0, want: "21", wantOk: true},
		{name: "fractional float", value: 21.5, want: "21.5", wantOk: true},
		{name: "map", value: map[string]interface{}{}, wantOk: false},
		{name: "nil", value: nil, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := AsString(tt.value)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStringOrList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"light.kitchen"}, StringOrList("light.kitchen"))
	assert.Equal(t, []string{"a", "b"}, StringOrList(AnyList{"a", "b"}))
	assert.Equal(t, []string{"a"}, StringOrList(AnyList{"a", 42}))
	assert.Nil(t, StringOrList(nil))
	assert.Nil(t, StringOrList(7))
}

func TestScalarOrList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"on"}, ScalarOrList("on"))
	assert.Equal(t, []string{"21", "off"}, ScalarOrList(AnyList{21, "off"}))
	assert.Nil(t, ScalarOrList(nil))
}

func TestIsEntityID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"binary_sensor.front_door", true},
		{"light.Kitchen_Main", true},
		{"sensor.temp_1", true},
		{"not an entity", false},
		{"noperiod", false},
		{"Upper.case_domain", false},
		{".object", false},
		{"domain.", false},
		{"a.b.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsEntityID(tt.value))
		})
	}
}

func TestDomainAndSplit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "light", Domain("light.kitchen"))
	assert.Equal(t, "", Domain("nodomain"))

	domain, object := SplitEntityID("person.matt")
	assert.Equal(t, "person", domain)
	assert.Equal(t, "matt", object)
}

func TestContainsTemplate(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsTemplate("{{ states('sensor.x') }}"))
	assert.True(t, ContainsTemplate("{% if true %}"))
	assert.False(t, ContainsTemplate("sensor.x"))
}

func TestTraverseValueStopsChildren(t *testing.T) {
	t.Parallel()

	tree := RawData{
		"keep": RawData{"inner": "a"},
		"skip": RawData{"inner": "b"},
	}

	var visited []string
	TraverseValue(tree, "", func(value interface{}, path string) bool {
		if s, ok := value.(string); ok {
			visited = append(visited, s)
		}
		return path != "skip"
	})

	assert.Contains(t, visited, "a")
	assert.NotContains(t, visited, "b")
}

func TestPathHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "trigger", JoinPath("", "trigger"))
	assert.Equal(t, "trigger.to", JoinPath("trigger", "to"))
	assert.Equal(t, "trigger[2]", IndexPath("trigger", 2))
	assert.Equal(t, "action.target", KeyPath("action", "target"))
}
