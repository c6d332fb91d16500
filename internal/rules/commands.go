package rules

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/config"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/corpus"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/defs"
)

// Commands validates the user-facing instruction documents.
type Commands struct {
	cfg    *config.Config
	titler cases.Caser
}

// NewCommands creates the commands rule module.
func NewCommands(cfg *config.Config) *Commands {
	return &Commands{cfg: cfg, titler: cases.Title(language.English)}
}

// Name implements audit.Module.
func (c *Commands) Name() string { return ModuleCommands }

// Load implements audit.Module.
func (c *Commands) Load(l *corpus.Loader) ([]corpus.Document, error) {
	return l.LoadDocuments(corpus.KindCommand, defs.CommandsDir, defs.DocGlob)
}

// Steps implements audit.Module.
func (c *Commands) Steps() []audit.Step {
	return []audit.Step{
		{Name: "formatting-compliance", Run: c.formattingCompliance},
		{Name: "required-sections", Run: c.requiredSections},
		{Name: "naming-consistency", Run: c.namingConsistency},
		{Name: "parameter-docs", Run: c.parameterDocs},
		{Name: "syntax-validation", Run: c.syntaxValidation},
	}
}

// formattingCompliance checks that each document carries at least one
// recognized instructional section heading.
func (c *Commands) formattingCompliance(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		if !hasHeading(extractHeadings(doc.Body), c.cfg.Commands.InstructionalHeadings) {
			findings = append(findings, audit.Finding{
				Path: doc.Path,
				Reason: fmt.Sprintf("no instructional section heading (expected one of: %s)",
					strings.Join(c.cfg.Commands.InstructionalHeadings, ", ")),
			})
		}
	}
	return audit.NewRateResult("formatting-compliance", findings, len(docs),
		c.cfg.Thresholds.FormattingIssueRate)
}

// requiredSections re-checks the instructional-heading requirement at
// outline granularity: the finding names the sections the document does
// have, so a reader sees exactly what is missing against what exists.
func (c *Commands) requiredSections(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		outline := extractHeadings(doc.Body)
		if hasHeading(outline, c.cfg.Commands.InstructionalHeadings) {
			continue
		}
		found := make([]string, 0, len(outline))
		for _, h := range outline {
			found = append(found, h.Text)
		}
		reason := fmt.Sprintf("missing sections: %s",
			strings.Join(c.cfg.Commands.InstructionalHeadings, "|"))
		if len(found) > 0 {
			reason += fmt.Sprintf("; found only: %s", strings.Join(found, ", "))
		} else {
			reason += "; document has no sections at all"
		}
		findings = append(findings, audit.Finding{Path: doc.Path, Reason: reason})
	}
	return audit.NewRateResult("required-sections", findings, len(docs),
		c.cfg.Thresholds.MissingSectionRate)
}

// namingConsistency checks kebab-case filenames and, when a document
// declares a title, that the title is derivable from the filename.
func (c *Commands) namingConsistency(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		stem := strings.TrimSuffix(path.Base(doc.Path), ".md")
		if !isKebabCase(stem) {
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "filename is not kebab-case",
			})
			continue
		}
		title, ok := declaredTitle(doc.Body)
		if !ok {
			continue // no declared title, nothing to cross-check
		}
		if kebabize(title) != stem {
			expected := c.titler.String(strings.ReplaceAll(stem, "-", " "))
			findings = append(findings, audit.Finding{
				Path: doc.Path,
				Reason: fmt.Sprintf("title %q does not derive from filename (expected ~%q)",
					title, expected),
			})
		}
	}
	return audit.NewRateResult("naming-consistency", findings, len(docs), 0)
}

// declaredTitle returns the text of the document's first level-1 heading.
func declaredTitle(body string) (string, bool) {
	for _, h := range extractHeadings(body) {
		if h.Level == 1 {
			return h.Text, true
		}
	}
	return "", false
}

// parameterDocs checks that a document declaring arguments also documents
// them. Documents with no declared arguments trivially pass.
func (c *Commands) parameterDocs(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		if !declaresArguments(doc) {
			continue
		}
		if hasHeading(extractHeadings(doc.Body), c.cfg.Commands.ArgumentHeadings) {
			continue
		}
		findings = append(findings, audit.Finding{
			Path: doc.Path,
			Reason: fmt.Sprintf("declares arguments but has no %s section",
				strings.Join(c.cfg.Commands.ArgumentHeadings, "/")),
		})
	}
	return audit.NewRateResult("parameter-docs", findings, len(docs), 0)
}

// declaresArguments reports whether a command takes arguments: either an
// $ARGUMENTS substitution token in the body or an arguments field in the
// metadata block.
func declaresArguments(doc corpus.Document) bool {
	if strings.Contains(doc.Body, "$ARGUMENTS") {
		return true
	}
	for _, key := range []string{"arguments", "argument-hint"} {
		if _, ok := doc.Header.Get(key); ok {
			return true
		}
	}
	return false
}

// syntaxValidation checks that the document body begins with a top-level
// heading: the first non-blank line must be a level-1 heading.
func (c *Commands) syntaxValidation(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		if !startsWithH1(doc.Body) {
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "Does not start with H1",
			})
		}
	}
	return audit.NewRateResult("syntax-validation", findings, len(docs), 0)
}

// startsWithH1 reports whether the first non-blank line is a level-1
// heading.
func startsWithH1(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, "# ")
	}
	return false
}
