// Package rules implements the per-module rule evaluator sets of the
// corpus validation framework. Each module (agents, context, commands)
// supplies an ordered list of pure steps; a step scans the loaded
// documents and folds violations into a StepResult, never aborting the
// run on a bad document.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/config"
)

// Module name constants used in reports and CLI selection.
const (
	ModuleAgents   = "agents"
	ModuleContext  = "context"
	ModuleCommands = "commands"
)

// All returns every rule module in canonical order.
func All(cfg *config.Config) []audit.Module {
	return []audit.Module{
		NewAgents(cfg),
		NewContext(cfg),
		NewCommands(cfg),
	}
}

// ByName resolves a module by its report name.
func ByName(cfg *config.Config, name string) (audit.Module, error) {
	switch name {
	case ModuleAgents:
		return NewAgents(cfg), nil
	case ModuleContext:
		return NewContext(cfg), nil
	case ModuleCommands:
		return NewCommands(cfg), nil
	}
	return nil, fmt.Errorf("unknown module %q (want one of: %s, %s, %s)",
		name, ModuleAgents, ModuleContext, ModuleCommands)
}

// heading is one markdown section header extracted from a document body.
type heading struct {
	Level int
	Text  string
}

var headingPattern = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+?)\s*$`)

// extractHeadings returns the full outline of markdown headings in order
// of appearance.
func extractHeadings(body string) []heading {
	matches := headingPattern.FindAllStringSubmatch(body, -1)
	headings := make([]heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, heading{Level: len(m[1]), Text: m[2]})
	}
	return headings
}

// hasHeading reports whether any extracted heading matches one of the
// wanted titles, case-insensitively. A heading matches when it equals the
// wanted title or starts with it ("Usage Examples" satisfies "Usage").
func hasHeading(headings []heading, wanted []string) bool {
	for _, h := range headings {
		text := strings.ToLower(h.Text)
		for _, w := range wanted {
			lw := strings.ToLower(w)
			if text == lw || strings.HasPrefix(text, lw+" ") {
				return true
			}
		}
	}
	return false
}

var kebabStemPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// isKebabCase reports whether a filename stem is kebab-case.
func isKebabCase(stem string) bool {
	return kebabStemPattern.MatchString(stem)
}

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)

// kebabize lowercases a title and collapses every non-alphanumeric run
// into a single hyphen, so "How to Use It" becomes "how-to-use-it".
func kebabize(s string) string {
	s = nonAlnumPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
