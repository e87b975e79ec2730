// automation-lint checks Home Assistant automation definitions against what
// a live (or snapshotted) instance actually knows: which entities exist,
// which states they can take, which attributes and services are declared.
//
// Usage:
//
//	automation-lint check automations.yaml
//	automation-lint check --ha-url http://ha.local:8123 --token XXX automations.yaml
//	automation-lint check --snapshot states.json --recorder-db home-assistant_v2.db automations.yaml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/home-assistant-tools/automation-lint-go/internal/automation"
	"github.com/home-assistant-tools/automation-lint-go/internal/config"
	"github.com/home-assistant-tools/automation-lint-go/internal/engine"
	"github.com/home-assistant-tools/automation-lint-go/internal/history"
	"github.com/home-assistant-tools/automation-lint-go/internal/homeassistant"
	"github.com/home-assistant-tools/automation-lint-go/internal/knowledge"
	"github.com/home-assistant-tools/automation-lint-go/internal/logger"
	"github.com/home-assistant-tools/automation-lint-go/internal/reference"
	"github.com/home-assistant-tools/automation-lint-go/internal/registry"
	"github.com/home-assistant-tools/automation-lint-go/internal/runner"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "automation-lint",
		Usage:   "validate Home Assistant automations against instance knowledge",
		Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
		Commands: []*cli.Command{
			checkCommand(),
			learnCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Sprint("error:"), err)
		os.Exit(2)
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "analyze automation files and report issues",
		ArgsUsage: "<automations.yaml> [more files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to the analyzer config file"},
			&cli.StringFlag{Name: "ha-url", Usage: "Home Assistant base URL"},
			&cli.StringFlag{Name: "token", Usage: "long-lived access token", Sources: cli.EnvVars("HA_TOKEN")},
			&cli.StringFlag{Name: "snapshot", Usage: "entity snapshot JSON file (offline mode)"},
			&cli.StringFlag{Name: "recorder-db", Usage: "recorder SQLite database path"},
			&cli.BoolFlag{Name: "strict-templates", Usage: "flag unknown template filters and tests"},
			&cli.BoolFlag{Name: "strict-services", Usage: "check service names and parameters"},
			&cli.BoolFlag{Name: "json", Usage: "emit the report as JSON"},
			&cli.StringFlag{Name: "log-level", Usage: "log level override"},
		},
		Action: runCheck,
	}
}

func learnCommand() *cli.Command {
	return &cli.Command{
		Name:      "learn",
		Usage:     "mark a state as valid for an entity, suppressing future warnings",
		ArgsUsage: "<entity_id> <state>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to the analyzer config file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return cli.Exit("usage: automation-lint learn <entity_id> <state>", 2)
			}
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if cfg.Knowledge.CorrectionsPath == "" {
				return cli.Exit("knowledge.corrections_path is not configured", 2)
			}
			store := knowledge.NewFileCorrectionStore(cfg.Knowledge.CorrectionsPath)
			entityID, state := cmd.Args().Get(0), cmd.Args().Get(1)
			if err := store.Add(entityID, state); err != nil {
				return err
			}
			fmt.Printf("learned: %s may be %q\n", entityID, state)
			return nil
		},
	}
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return cli.Exit("no automation files given", 2)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd)

	level := cfg.Log.Level
	if override := cmd.String("log-level"); override != "" {
		level = override
	}
	log := logger.New(level)

	var autos []automation.Automation
	for _, path := range cmd.Args().Slice() {
		loaded, err := automation.LoadFile(path)
		if err != nil {
			return err
		}
		autos = append(autos, loaded...)
	}
	log.WithField("automations", len(autos)).Debug("automations loaded")

	kb, reg, catalog := buildKnowledge(ctx, cfg, cmd, log)

	extractor := reference.New(cfg.Analysis.MaxDepth, log)
	eng := engine.New(kb, reg, cfg.Analysis.SuggestionCutoff, log)
	run := runner.New(extractor, eng, catalog, runner.Options{
		StrictTemplates: cfg.Analysis.StrictTemplateValidation,
		StrictServices:  cfg.Analysis.StrictServiceValidation,
	}, log)

	report := run.Run(autos)

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if report.ErrorCount() > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// applyFlags lets command-line flags override file configuration.
func applyFlags(cfg *config.Config, cmd *cli.Command) {
	if url := cmd.String("ha-url"); url != "" {
		cfg.HomeAssistant.URL = url
	}
	if token := cmd.String("token"); token != "" {
		cfg.HomeAssistant.Token = token
	}
	if db := cmd.String("recorder-db"); db != "" {
		cfg.Recorder.Path = db
	}
	if cmd.Bool("strict-templates") {
		cfg.Analysis.StrictTemplateValidation = true
	}
	if cmd.Bool("strict-services") {
		cfg.Analysis.StrictServiceValidation = true
	}
}

// buildKnowledge assembles the knowledge base, registry snapshot and service
// catalog from whatever sources are reachable. Every source is optional; a
// failure narrows coverage and is logged, never fatal.
func buildKnowledge(ctx context.Context, cfg *config.Config, cmd *cli.Command, log *logrus.Logger) (*knowledge.Base, *registry.Snapshot, engine.ServiceCatalog) {
	order, err := knowledge.ParseTierOrder(cfg.Analysis.TierOrder)
	if err != nil {
		log.WithError(err).Warn("invalid tier order, using default")
		order = knowledge.DefaultTierOrder()
	}
	store := knowledge.NewFileCorrectionStore(cfg.Knowledge.CorrectionsPath)
	kb := knowledge.NewBase(order, store, log)

	if err := kb.LoadCorrections(); err != nil {
		log.WithError(err).Warn("failed to load corrections")
	}
	if err := kb.LoadSchema(knowledge.NewFileSchemaProvider(cfg.Knowledge.SchemaPath)); err != nil {
		log.WithError(err).Warn("failed to load schema file")
	}

	var reg *registry.Snapshot
	var catalog engine.ServiceCatalog

	if snapshotPath := cmd.String("snapshot"); snapshotPath != "" {
		if err := kb.LoadSnapshot(ctx, knowledge.NewFileCapabilityProvider(snapshotPath)); err != nil {
			log.WithError(err).Warn("failed to load snapshot file")
		}
	} else if cfg.HomeAssistant.Token != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		client, err := homeassistant.Dial(dialCtx, cfg.HomeAssistant.URL, cfg.HomeAssistant.Token, log)
		cancel()
		if err != nil {
			log.WithError(err).Warn("Home Assistant unreachable, validating offline")
		} else {
			defer client.Close()
			if err := kb.LoadSnapshot(ctx, client); err != nil {
				log.WithError(err).Warn("failed to fetch entity states")
			}
			if reg, err = client.RegistrySnapshot(ctx); err != nil {
				log.WithError(err).Warn("failed to fetch registries")
				reg = nil
			}
			if cfg.Analysis.StrictServiceValidation {
				if cat, err := client.ServiceCatalog(ctx); err != nil {
					log.WithError(err).Warn("failed to fetch service catalog")
				} else {
					catalog = cat
				}
			}
		}
	}

	if cfg.Recorder.Path != "" {
		rec, err := history.Open(cfg.Recorder.Path)
		if err != nil {
			log.WithError(err).Warn("failed to open recorder database")
		} else {
			defer rec.Close()
			histCtx, cancel := context.WithTimeout(ctx, cfg.Analysis.HistoryTimeout)
			if err := kb.LoadHistory(histCtx, rec, cfg.Analysis.HistoryDays); err != nil {
				log.WithError(err).Warn("history load failed, historical tier empty")
			}
			cancel()
		}
	}

	return kb, reg, catalog
}

// printReport writes the human-readable report.
func printReport(report runner.Report) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	if len(report.Issues) == 0 {
		fmt.Printf("%s %d automations, %d references, no issues\n",
			green("OK"), report.Automations, report.References)
		return
	}

	for _, issue := range report.Issues {
		var tag string
		switch issue.Severity {
		case engine.SeverityError:
			tag = red("ERROR")
		case engine.SeverityWarning:
			tag = yellow("WARN ")
		default:
			tag = cyan("INFO ")
		}
		fmt.Printf("%s [%s] %s", tag, issue.AutomationID, issue.Message)
		if issue.Location != "" {
			fmt.Printf(" (%s)", issue.Location)
		}
		if issue.Suggestion != nil {
			fmt.Printf("\n        did you mean %q?", *issue.Suggestion)
		}
		fmt.Println()
	}

	errors := report.ErrorCount()
	warnings := 0
	for _, issue := range report.Issues {
		if issue.Severity == engine.SeverityWarning {
			warnings++
		}
	}
	fmt.Println()
	if errors > 0 {
		fmt.Printf("%s %d errors, %d warnings across %d automations\n",
			red("FAIL"), errors, warnings, report.Automations)
	} else {
		fmt.Printf("%s %d warnings across %d automations\n",
			yellow("WARN"), warnings, report.Automations)
	}
}
