// Package runner orchestrates one analysis run: extraction across a batch of
// automations, validation against the knowledge base, and assembly of the
// deduplicated report.
package runner

import (
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/home-assistant-tools/automation-lint-go/internal/automation"
	"github.com/home-assistant-tools/automation-lint-go/internal/engine"
	"github.com/home-assistant-tools/automation-lint-go/internal/logger"
	"github.com/home-assistant-tools/automation-lint-go/internal/reference"
)

// Report is the result of one run. Issues are deduplicated and sorted.
type Report struct {
	RunID       string         `json:"run_id"`
	StartedAt   time.Time      `json:"started_at"`
	Duration    time.Duration  `json:"duration"`
	Automations int            `json:"automations"`
	References  int            `json:"references"`
	Issues      []engine.Issue `json:"issues"`
}

// ErrorCount returns the number of error-severity issues.
func (r Report) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == engine.SeverityError {
			n++
		}
	}
	return n
}

// Runner wires the extractor and engine together. Runs are idempotent for a
// fixed knowledge snapshot, so redundant invocations from a debounced reload
// are harmless.
type Runner struct {
	extractor *reference.Extractor
	engine    *engine.Engine
	catalog   engine.ServiceCatalog

	strictTemplates bool
	strictServices  bool
	workers         int
	log             *logrus.Logger
}

// Options configures a Runner.
type Options struct {
	StrictTemplates bool
	StrictServices  bool
	// Workers bounds extraction parallelism; zero means GOMAXPROCS.
	Workers int
}

// New creates a runner. catalog may be nil when service validation is off or
// no instance is reachable.
func New(extractor *reference.Extractor, eng *engine.Engine, catalog engine.ServiceCatalog, opts Options, log *logrus.Logger) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{
		extractor:       extractor,
		engine:          eng,
		catalog:         catalog,
		strictTemplates: opts.StrictTemplates,
		strictServices:  opts.StrictServices,
		workers:         workers,
		log:             log,
	}
}

// Run analyzes a batch of automations and returns the report.
func (r *Runner) Run(autos []automation.Automation) Report {
	start := time.Now()

	facts := r.extractAll(autos)

	set := r.engine.ValidateAll(facts.References)
	set.Add(engine.LintTemplates(facts.Templates, r.strictTemplates)...)
	if r.strictServices {
		set.Add(engine.ValidateServices(facts.Services, r.catalog)...)
	}

	report := Report{
		RunID:       uuid.NewString(),
		StartedAt:   start,
		Duration:    time.Since(start),
		Automations: len(autos),
		References:  len(facts.References),
		Issues:      set.List(),
	}
	r.log.WithFields(logrus.Fields{
		"run_id":      report.RunID,
		"automations": report.Automations,
		"references":  report.References,
		"issues":      len(report.Issues),
	}).Info("analysis run complete")
	return report
}

// extractAll fans extraction out over a bounded worker pool. Extraction is
// pure per automation, so order only matters for determinism of the combined
// slice; results are reassembled in input order.
func (r *Runner) extractAll(autos []automation.Automation) reference.Facts {
	if len(autos) == 0 {
		return reference.Facts{}
	}

	results := make([]reference.Facts, len(autos))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := r.workers
	if workers > len(autos) {
		workers = len(autos)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.extractor.Extract(autos[i])
			}
		}()
	}
	for i := range autos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var all reference.Facts
	for _, facts := range results {
		all.References = append(all.References, facts.References...)
		all.Services = append(all.Services, facts.Services...)
		all.Templates = append(all.Templates, facts.Templates...)
	}
	return all
}
