package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
)

// Terminal palette, matching the CLI card styles.
var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

// statusBadge renders a colored PASS/FAIL badge.
func statusBadge(s audit.Status, noColor bool) string {
	if noColor {
		return string(s)
	}
	if s == audit.StatusPass {
		return passStyle.Render(string(s))
	}
	return failStyle.Render(string(s))
}

// SummaryCard renders the executive summary in a rounded-border card for
// terminal output.
func SummaryCard(r audit.SystemReport, noColor bool) string {
	var body strings.Builder
	fmt.Fprintf(&body, "Overall: %s\n", statusBadge(r.Status, noColor))
	fmt.Fprintf(&body, "Modules: %d/%d passed\n", r.ModulesPassed, r.ModulesTotal)
	fmt.Fprintf(&body, "Steps:   %s success rate\n\n", audit.Percent(r.StepSuccessRate))

	for _, m := range r.Modules {
		fmt.Fprintf(&body, "%-10s %s  %d/%d steps\n",
			m.Module, statusBadge(m.Status, noColor), m.StepsPassed, m.StepsTotal)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderStyle.GetForeground()).
		Padding(0, 2)
	if noColor {
		card = lipgloss.NewStyle().Padding(0, 2)
	}
	return card.Render(strings.TrimRight(body.String(), "\n"))
}

// IsTerminal reports whether the given file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderTerminal renders markdown for terminal display. On a TTY the
// markdown is styled with glamour; otherwise it passes through unchanged
// so piped output stays diffable.
func RenderTerminal(markdown string, isTTY bool) string {
	if !isTTY {
		return markdown
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}
	styled, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return styled
}
