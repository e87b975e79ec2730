// Package config loads analyzer configuration from a YAML file with
// environment overrides, supplying defaults for every recognized option.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
)

// Config is the root configuration.
type Config struct {
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	HomeAssistant HomeAssistantConfig `mapstructure:"homeassistant"`
	Recorder      RecorderConfig      `mapstructure:"recorder"`
	Knowledge     KnowledgeConfig     `mapstructure:"knowledge"`
	Log           LogConfig           `mapstructure:"log"`
}

// KnowledgeConfig locates the optional file-backed knowledge sources.
type KnowledgeConfig struct {
	// SchemaPath is a YAML file of declared state vocabularies per entity.
	SchemaPath string `mapstructure:"schema_path"`
	// CorrectionsPath is the YAML file user-confirmed states persist to.
	CorrectionsPath string `mapstructure:"corrections_path"`
}

// AnalysisConfig carries the validation options recognized by the core.
type AnalysisConfig struct {
	// StrictTemplateValidation enables unknown-filter/unknown-test warnings
	// for Jinja templates. Off by default.
	StrictTemplateValidation bool `mapstructure:"strict_template_validation"`
	// StrictServiceValidation enables service existence and parameter
	// checks. Off by default.
	StrictServiceValidation bool `mapstructure:"strict_service_validation"`
	// HistoryDays is the lookback window for historical observation.
	HistoryDays int `mapstructure:"history_days"`
	// ValidateOnReload re-runs validation when automations reload.
	ValidateOnReload bool `mapstructure:"validate_on_reload"`
	// DebounceSeconds is the reload debounce applied by the caller. The
	// core only tolerates redundant invocation; it does not debounce.
	DebounceSeconds int `mapstructure:"debounce_seconds"`
	// MaxDepth bounds recursion into nested condition/action blocks.
	MaxDepth int `mapstructure:"max_depth"`
	// HistoryTimeout bounds the background history load.
	HistoryTimeout time.Duration `mapstructure:"history_timeout"`
	// SuggestionCutoff is the similarity threshold for fuzzy suggestions.
	SuggestionCutoff float64 `mapstructure:"suggestion_cutoff"`
	// TierOrder overrides the knowledge merge precedence, lowest first.
	// Recognized names: historical, schema, domain_default, capability,
	// user_confirmed.
	TierOrder []string `mapstructure:"tier_order"`
}

// HomeAssistantConfig locates the Home Assistant instance.
type HomeAssistantConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// RecorderConfig locates the recorder database for the historical tier.
type RecorderConfig struct {
	// Path to the recorder SQLite database. Empty disables the tier.
	Path string `mapstructure:"path"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.strict_template_validation", false)
	v.SetDefault("analysis.strict_service_validation", false)
	v.SetDefault("analysis.history_days", 30)
	v.SetDefault("analysis.validate_on_reload", true)
	v.SetDefault("analysis.debounce_seconds", 5)
	v.SetDefault("analysis.max_depth", 20)
	v.SetDefault("analysis.history_timeout", 60*time.Second)
	v.SetDefault("analysis.suggestion_cutoff", 0.75)
	v.SetDefault("homeassistant.url", "http://homeassistant.local:8123")
	v.SetDefault("homeassistant.token", "")
	v.SetDefault("recorder.path", "")
	v.SetDefault("knowledge.schema_path", "")
	v.SetDefault("knowledge.corrections_path", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from the given file path. An empty path loads
// defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AUTOMATION_LINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.Create(apperrors.CodeConfigLoad).WithPath(path).WithCause(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Create(apperrors.CodeConfigLoad).WithCause(err)
	}

	if cfg.Analysis.MaxDepth < 1 {
		return nil, apperrors.Create(apperrors.CodeConfigInvalid).WithMessagef("analysis.max_depth must be positive, got %d", cfg.Analysis.MaxDepth)
	}
	if cfg.Analysis.HistoryDays < 0 {
		return nil, apperrors.Create(apperrors.CodeConfigInvalid).WithMessagef("analysis.history_days must be non-negative, got %d", cfg.Analysis.HistoryDays)
	}
	if cfg.Analysis.SuggestionCutoff <= 0 || cfg.Analysis.SuggestionCutoff > 1 {
		return nil, apperrors.Create(apperrors.CodeConfigInvalid).WithMessagef("analysis.suggestion_cutoff must be in (0, 1], got %v", cfg.Analysis.SuggestionCutoff)
	}

	return &cfg, nil
}
