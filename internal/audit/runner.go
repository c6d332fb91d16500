package audit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/corpus"
)

// StepProgress reports step execution to an observer (the CLI progress
// bar). module and step name the unit of work; index is 1-based.
type StepProgress func(module, step string, index, total int)

// Runner executes rule modules against a corpus and aggregates their
// results. It holds no cross-run state; every Run re-reads the tree.
type Runner struct {
	loader *corpus.Loader

	// OnStep, when set, is called before each step executes.
	OnStep StepProgress

	// FailFast stops a system run after the first failing module. The
	// default runs everything so the report is complete.
	FailFast bool
}

// NewRunner creates a Runner over the given corpus loader.
func NewRunner(loader *corpus.Loader) *Runner {
	return &Runner{loader: loader}
}

// RunModule loads the module's documents and executes all its steps in
// declared order, aggregating them into a ModuleReport. The only possible
// error is the fatal corpus-not-found from the loader.
func (r *Runner) RunModule(m Module) (ModuleReport, error) {
	docs, err := m.Load(r.loader)
	if err != nil {
		return ModuleReport{}, fmt.Errorf("load %s module: %w", m.Name(), err)
	}

	steps := m.Steps()
	report := ModuleReport{
		Module:     m.Name(),
		StepsTotal: len(steps),
		Documents:  len(docs),
		Steps:      make([]StepResult, 0, len(steps)),
	}

	for i, step := range steps {
		if r.OnStep != nil {
			r.OnStep(m.Name(), step.Name, i+1, len(steps))
		}
		result := step.Run(docs)
		if result.Status == StatusPass {
			report.StepsPassed++
		} else {
			slog.Debug("step failed", "module", m.Name(), "step", step.Name,
				"rate", result.Rate, "findings", len(result.Findings))
		}
		report.Steps = append(report.Steps, result)
	}

	if report.StepsTotal > 0 {
		report.SuccessRate = float64(report.StepsPassed) / float64(report.StepsTotal)
	}
	report.Status = StatusFail
	if report.StepsPassed == report.StepsTotal {
		report.Status = StatusPass
	}
	return report, nil
}

// RunSystem executes every module and combines the reports, applying the
// zero-tolerance gate: the system passes only if every module passes,
// however high the aggregate step rate is.
func (r *Runner) RunSystem(modules []Module) (SystemReport, error) {
	report := SystemReport{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Root:         r.loader.Root(),
		ModulesTotal: len(modules),
		Modules:      make([]ModuleReport, 0, len(modules)),
	}

	stepsTotal, stepsPassed := 0, 0
	for _, m := range modules {
		mr, err := r.RunModule(m)
		if err != nil {
			return SystemReport{}, err
		}
		report.Modules = append(report.Modules, mr)
		stepsTotal += mr.StepsTotal
		stepsPassed += mr.StepsPassed
		if mr.Status == StatusPass {
			report.ModulesPassed++
		} else if r.FailFast {
			break
		}
	}

	if stepsTotal > 0 {
		report.StepSuccessRate = float64(stepsPassed) / float64(stepsTotal)
	}
	report.Status = StatusFail
	if report.ModulesPassed == len(report.Modules) && len(report.Modules) == report.ModulesTotal {
		report.Status = StatusPass
	}
	return report, nil
}
