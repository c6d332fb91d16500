// Package audit defines the report model of the corpus validation
// framework and the runner that executes rule modules against a loaded
// corpus. Reports are built once per run and never mutated.
package audit

import (
	"fmt"
	"sort"
	"time"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/corpus"
)

// Status is the pass/fail outcome of a step, module, or system run.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Finding is a single per-document violation: which path broke which rule
// and why. Findings are flat pairs rather than nested maps so sorting and
// rendering stay generic across all step kinds.
type Finding struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// StepResult is the outcome of one validation rule applied across the
// documents of a module.
type StepResult struct {
	// Name identifies the step within its module.
	Name string `json:"step"`

	// Status is Pass iff the violation rate clears the step's threshold.
	Status Status `json:"status"`

	// Rate is the violation rate as a fraction of scanned documents.
	Rate float64 `json:"rate"`

	// Threshold is the tolerance band the rate was compared against.
	// Zero-tolerance steps carry 0.
	Threshold float64 `json:"threshold"`

	// Detail is the one-line human summary shown in the report.
	Detail string `json:"detail"`

	// Findings lists every violating document with a reason, sorted by
	// path. Aggregate-only output is insufficient evidence by design.
	Findings []Finding `json:"findings"`

	// Extra carries step-specific aggregate tables (categorization
	// analysis, size distribution) for the machine payload.
	Extra map[string]any `json:"extra,omitempty"`
}

// Step is one named validation rule. Run is a pure fold over the document
// set; it must record violations as findings and never fail the run.
type Step struct {
	Name string
	Run  func(docs []corpus.Document) StepResult
}

// Module is one independently validated document kind. Each module loads
// its own document set and supplies its steps in a fixed order.
type Module interface {
	// Name returns the module name used in reports.
	Name() string

	// Load materializes the module's document set from the corpus.
	// The only permitted error is the loader's fatal corpus-not-found.
	Load(l *corpus.Loader) ([]corpus.Document, error)

	// Steps returns the ordered validation steps.
	Steps() []Step
}

// ModuleReport aggregates all step results for one module.
type ModuleReport struct {
	Module      string       `json:"module"`
	StepsTotal  int          `json:"steps_total"`
	StepsPassed int          `json:"steps_passed"`
	SuccessRate float64      `json:"success_rate"`
	Status      Status       `json:"status"`
	Documents   int          `json:"documents"`
	Steps       []StepResult `json:"steps"`
}

// SystemReport aggregates all module reports for one run. Status is Pass
// only when every module passes, regardless of the aggregate step rate.
type SystemReport struct {
	RunID           string         `json:"run_id"`
	GeneratedAt     time.Time      `json:"generated_at"`
	Root            string         `json:"root"`
	ModulesTotal    int            `json:"modules_total"`
	ModulesPassed   int            `json:"modules_passed"`
	StepSuccessRate float64        `json:"step_success_rate"`
	Status          Status         `json:"status"`
	Modules         []ModuleReport `json:"modules"`
}

// rateStatus applies the framework-wide threshold convention: a step
// passes iff it has no findings, or its violation rate is strictly below
// the threshold. A rate exactly equal to the threshold fails.
func rateStatus(findings []Finding, rate, threshold float64) Status {
	if len(findings) == 0 {
		return StatusPass
	}
	if rate < threshold {
		return StatusPass
	}
	return StatusFail
}

// NewRateResult builds a StepResult from the violations found across
// total scanned documents, applying the threshold convention and sorting
// findings for deterministic reports.
func NewRateResult(name string, findings []Finding, total int, threshold float64) StepResult {
	SortFindings(findings)
	rate := 0.0
	if total > 0 {
		rate = float64(len(findings)) / float64(total)
	}
	return StepResult{
		Name:      name,
		Status:    rateStatus(findings, rate, threshold),
		Rate:      rate,
		Threshold: threshold,
		Detail: fmt.Sprintf("%d of %d documents violate (%.1f%%, threshold %.1f%%)",
			len(findings), total, rate*100, threshold*100),
		Findings: findings,
	}
}

// SortFindings orders findings by path, then reason, so evidence ordering
// is byte-identical across runs.
func SortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Reason < findings[j].Reason
	})
}

// Percent formats a fraction as a percentage with one decimal place.
func Percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
