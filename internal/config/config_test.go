package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Analysis.StrictTemplateValidation)
	assert.False(t, cfg.Analysis.StrictServiceValidation)
	assert.Equal(t, 30, cfg.Analysis.HistoryDays)
	assert.Equal(t, 20, cfg.Analysis.MaxDepth)
	assert.Equal(t, 60*time.Second, cfg.Analysis.HistoryTimeout)
	assert.Equal(t, 0.75, cfg.Analysis.SuggestionCutoff)
	assert.True(t, cfg.Analysis.ValidateOnReload)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Recorder.Path)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
analysis:
  strict_template_validation: true
  history_days: 7
  max_depth: 10
  tier_order: [historical, user_confirmed]
homeassistant:
  url: http://ha.example:8123
recorder:
  path: /data/home-assistant_v2.db
knowledge:
  corrections_path: /data/corrections.yaml
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Analysis.StrictTemplateValidation)
	assert.Equal(t, 7, cfg.Analysis.HistoryDays)
	assert.Equal(t, 10, cfg.Analysis.MaxDepth)
	assert.Equal(t, []string{"historical", "user_confirmed"}, cfg.Analysis.TierOrder)
	assert.Equal(t, "http://ha.example:8123", cfg.HomeAssistant.URL)
	assert.Equal(t, "/data/home-assistant_v2.db", cfg.Recorder.Path)
	assert.Equal(t, "/data/corrections.yaml", cfg.Knowledge.CorrectionsPath)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero max_depth", content: "analysis:\n  max_depth: 0\n"},
		{name: "negative history_days", content: "analysis:\n  history_days: -1\n"},
		{name: "cutoff above one", content: "analysis:\n  suggestion_cutoff: 1.5\n"},
		{name: "cutoff zero", content: "analysis:\n  suggestion_cutoff: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("AUTOMATION_LINT_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}
