package automation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
)

func TestParseSingleAutomation(t *testing.T) {
	t.Parallel()

	yaml := `
id: "1234"
alias: Front door alert
trigger:
  - platform: state
    entity_id: binary_sensor.front_door
    to: "on"
action:
  - service: notify.mobile_app_matt
    data:
      message: door
`
	autos, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.Len(t, autos, 1)

	a := autos[0]
	assert.Equal(t, "1234", a.ID)
	assert.Equal(t, "Front door alert", a.Alias)
	assert.Equal(t, "Front door alert", a.Name())
	assert.NotNil(t, a.Triggers())
	assert.NotNil(t, a.Actions())
	assert.Nil(t, a.Conditions())
}

func TestParseAutomationList(t *testing.T) {
	t.Parallel()

	yaml := `
- id: one
  trigger: []
  action: []
- alias: second
  trigger: []
  action: []
`
	autos, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.Len(t, autos, 2)

	assert.Equal(t, "one", autos[0].ID)
	// Missing ids get a positional fallback.
	assert.Equal(t, "automation_1", autos[1].ID)
	assert.Equal(t, "second", autos[1].Name())
}

func TestParsePluralKeys(t *testing.T) {
	t.Parallel()

	yaml := `
id: modern
triggers:
  - trigger: state
    entity_id: light.kitchen
conditions:
  - condition: state
    entity_id: person.matt
    state: home
actions:
  - action: light.turn_off
    target:
      entity_id: light.kitchen
`
	autos, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.Len(t, autos, 1)

	assert.NotNil(t, autos[0].Triggers())
	assert.NotNil(t, autos[0].Conditions())
	assert.NotNil(t, autos[0].Actions())
}

func TestParseInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("{unclosed"))
	require.Error(t, err)
	assert.True(t, apperrors.IsParse(err))
}

func TestParseScalarDocument(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("just a string"))
	require.Error(t, err)
	assert.True(t, apperrors.IsParse(err))
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	autos, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, autos)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "automations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: from_file\n  trigger: []\n  action: []\n"), 0o644))

	autos, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, autos, 1)
	assert.Equal(t, "from_file", autos[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
