package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/home-assistant-tools/automation-lint-go/internal/reference"
)

type fakeCatalog struct {
	services map[string]ServiceSchema
}

func (f *fakeCatalog) Ready() bool { return len(f.services) > 0 }

func (f *fakeCatalog) Service(name string) (ServiceSchema, bool) {
	schema, ok := f.services[name]
	return schema, ok
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[string]ServiceSchema{
		"light.turn_on": {Fields: map[string]ServiceField{
			"brightness": {},
			"transition": {},
		}},
		"notify.mobile_app_matt": {Fields: map[string]ServiceField{
			"message": {Required: true},
			"title":   {},
		}},
	}}
}

func call(service string, data map[string]interface{}) reference.ServiceCall {
	return reference.ServiceCall{
		AutomationID: "auto_1",
		Service:      service,
		Location:     "action[0]",
		Data:         data,
	}
}

func TestServiceNotFound(t *testing.T) {
	t.Parallel()

	issues := ValidateServices([]reference.ServiceCall{call("light.trun_on", nil)}, testCatalog())
	require.Len(t, issues, 1)
	assert.Equal(t, IssueServiceNotFound, issues[0].Type)
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestMissingRequiredParam(t *testing.T) {
	t.Parallel()

	issues := ValidateServices([]reference.ServiceCall{
		call("notify.mobile_app_matt", map[string]interface{}{"title": "hi"}),
	}, testCatalog())

	require.Len(t, issues, 1)
	assert.Equal(t, IssueMissingRequired, issues[0].Type)
	assert.Contains(t, issues[0].Message, "message")
}

func TestUnknownParamWithSuggestion(t *testing.T) {
	t.Parallel()

	issues := ValidateServices([]reference.ServiceCall{
		call("light.turn_on", map[string]interface{}{"brightnes": 200}),
	}, testCatalog())

	require.Len(t, issues, 1)
	assert.Equal(t, IssueUnknownParam, issues[0].Type)
	require.NotNil(t, issues[0].Suggestion)
	assert.Equal(t, "brightness", *issues[0].Suggestion)
}

func TestTargetingFieldsAccepted(t *testing.T) {
	t.Parallel()

	issues := ValidateServices([]reference.ServiceCall{
		call("light.turn_on", map[string]interface{}{"entity_id": "light.kitchen", "brightness": 120}),
	}, testCatalog())
	assert.Empty(t, issues)
}

func TestNoCatalogIsSilent(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ValidateServices([]reference.ServiceCall{call("light.trun_on", nil)}, nil))
	assert.Empty(t, ValidateServices([]reference.ServiceCall{call("light.trun_on", nil)}, &fakeCatalog{}))
}

func TestServiceDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "light", ServiceDomain("light.turn_on"))
	assert.Equal(t, "", ServiceDomain("nodot"))
}
