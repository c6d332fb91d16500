// Package report serializes audit reports into their two equivalent
// renderings: a human-readable markdown document with embedded JSON
// evidence, and a machine-readable JSON payload. The report file is
// overwritten on each run, never appended.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
)

// RenderMarkdown renders the full system report: an executive summary
// followed by one section per module and per step.
func RenderMarkdown(r audit.SystemReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Corpus Validation Report\n\n")
	fmt.Fprintf(&sb, "- **Overall status**: %s\n", r.Status)
	fmt.Fprintf(&sb, "- **Modules passed**: %d/%d\n", r.ModulesPassed, r.ModulesTotal)
	fmt.Fprintf(&sb, "- **Step success rate**: %s\n", audit.Percent(r.StepSuccessRate))
	fmt.Fprintf(&sb, "- **Corpus root**: `%s`\n", r.Root)
	fmt.Fprintf(&sb, "- **Run ID**: `%s`\n", r.RunID)
	fmt.Fprintf(&sb, "- **Generated**: %s\n\n", r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))

	for i := range r.Modules {
		writeModule(&sb, &r.Modules[i])
	}
	return sb.String()
}

// RenderModuleMarkdown renders a single-module report for scoped runs.
func RenderModuleMarkdown(m audit.ModuleReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Corpus Validation Report: %s\n\n", m.Module)
	writeModule(&sb, &m)
	return sb.String()
}

func writeModule(sb *strings.Builder, m *audit.ModuleReport) {
	fmt.Fprintf(sb, "## Module: %s — %s (%d/%d steps, %s)\n\n",
		m.Module, m.Status, m.StepsPassed, m.StepsTotal, audit.Percent(m.SuccessRate))
	fmt.Fprintf(sb, "%d documents scanned.\n\n", m.Documents)

	for i := range m.Steps {
		writeStep(sb, &m.Steps[i])
	}
}

func writeStep(sb *strings.Builder, s *audit.StepResult) {
	fmt.Fprintf(sb, "### %s — %s\n\n", s.Name, s.Status)
	fmt.Fprintf(sb, "%s\n\n", s.Detail)

	if len(s.Findings) > 0 {
		fmt.Fprintf(sb, "Violations:\n\n")
		for _, f := range s.Findings {
			fmt.Fprintf(sb, "- `%s` — %s\n", f.Path, f.Reason)
		}
		fmt.Fprintf(sb, "\n")
	}

	evidence, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		// StepResult is plain data; marshalling cannot realistically fail,
		// but the report must never be silently incomplete.
		evidence = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
	}
	fmt.Fprintf(sb, "<details><summary>Evidence</summary>\n\n```json\n%s\n```\n\n</details>\n\n", evidence)
}

// WriteFile writes a rendered report to path, replacing any previous run's
// artifact.
func WriteFile(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
