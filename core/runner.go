package core

import (
	"time"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/scene"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// Run opens the scene once and executes the selected checks strictly
// sequentially in registration order against that one shared stage. Failure
// to open the scene aborts the run before any check executes; it is the only
// hard precondition at this level. Check failures are reported through the
// returned outcomes, never as errors.
func Run(cfg *contract.Config, reg *Registry) *schema.Report {
	report := &schema.Report{
		ScenePath: cfg.ScenePath,
		StartedAt: time.Now(),
	}

	stage, err := scene.Open(cfg.ScenePath)
	if err != nil {
		report.OpenedOK = false
		report.OpenError = err.Error()
		report.Duration = time.Since(report.StartedAt)
		return report
	}
	report.OpenedOK = true

	for _, check := range reg.Selected(cfg.Run) {
		report.Outcomes = append(report.Outcomes, check.Evaluate(stage))
	}

	report.Duration = time.Since(report.StartedAt)
	return report
}

// ExecuteValidation runs the selected checks and records the report in the
// history store. A history failure is warned about but never changes the
// report or the process exit status.
func ExecuteValidation(cfg *contract.Config, reg *Registry, store contract.HistoryStore) *schema.Report {
	report := Run(cfg, reg)

	if store != nil {
		if _, err := store.RecordRun(report, cfg.Params()); err != nil {
			contract.LogWarn("could not record run history", err)
		}
	}
	return report
}
