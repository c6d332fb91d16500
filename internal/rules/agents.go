package rules

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/config"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/corpus"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/defs"
)

// Agents validates agent definition documents. The metadata block is the
// load-bearing contract for the host platform, so every step here is
// zero-tolerance: one bad document fails the step.
type Agents struct {
	cfg *config.Config
}

// NewAgents creates the agents rule module.
func NewAgents(cfg *config.Config) *Agents {
	return &Agents{cfg: cfg}
}

// Name implements audit.Module.
func (a *Agents) Name() string { return ModuleAgents }

// Load implements audit.Module.
func (a *Agents) Load(l *corpus.Loader) ([]corpus.Document, error) {
	return l.LoadDocuments(corpus.KindAgent, defs.AgentsDir, defs.DocGlob)
}

// Steps implements audit.Module. Order is fixed: syntax before field
// checks so a report reads from coarse defects to fine ones.
func (a *Agents) Steps() []audit.Step {
	return []audit.Step{
		{Name: "metadata-syntax", Run: a.metadataSyntax},
		{Name: "required-fields", Run: a.requiredFields},
		{Name: "forbidden-fields", Run: a.forbiddenFields},
		{Name: "field-types", Run: a.fieldTypes},
		{Name: "metadata-boundary", Run: a.metadataBoundary},
	}
}

// metadataSyntax checks that the metadata block parses as a flat
// key/value structure.
func (a *Agents) metadataSyntax(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		switch {
		case !doc.HasFrontmatter:
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "no metadata block found",
			})
		case doc.HeaderParseFailed:
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "metadata block is not valid YAML",
			})
		default:
			for _, f := range doc.Header.Fields {
				if f.Value.Kind == yaml.MappingNode {
					findings = append(findings, audit.Finding{
						Path:   doc.Path,
						Reason: fmt.Sprintf("field %q is nested, metadata must be flat", f.Key),
					})
				}
			}
		}
	}
	return audit.NewRateResult("metadata-syntax", findings, len(docs), 0)
}

// requiredFields checks that exactly the required field set is declared.
// Documents whose metadata failed to parse are skipped here; the syntax
// step already reported them.
func (a *Agents) requiredFields(docs []corpus.Document) audit.StepResult {
	required := make(map[string]bool, len(a.cfg.Agents.RequiredFields))
	for _, f := range a.cfg.Agents.RequiredFields {
		required[f] = true
	}

	var findings []audit.Finding
	for _, doc := range docs {
		if doc.Header == nil {
			continue
		}
		declared := make(map[string]bool, len(doc.Header.Fields))
		for _, key := range doc.Header.Keys() {
			declared[key] = true
			if !required[key] {
				findings = append(findings, audit.Finding{
					Path: doc.Path, Reason: fmt.Sprintf("unexpected field: %s", key),
				})
			}
		}
		for _, key := range a.cfg.Agents.RequiredFields {
			if !declared[key] {
				findings = append(findings, audit.Finding{
					Path: doc.Path, Reason: fmt.Sprintf("missing required field: %s", key),
				})
			}
		}
	}
	return audit.NewRateResult("required-fields", findings, len(docs), 0)
}

// forbiddenFields checks the schema-drift denylist.
func (a *Agents) forbiddenFields(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		if doc.Header == nil {
			continue
		}
		for _, key := range a.cfg.Agents.ForbiddenFields {
			if _, ok := doc.Header.Get(key); ok {
				findings = append(findings, audit.Finding{
					Path: doc.Path, Reason: fmt.Sprintf("forbidden field present: %s", key),
				})
			}
		}
	}
	return audit.NewRateResult("forbidden-fields", findings, len(docs), 0)
}

// fieldTypes checks declared field shapes: name and description must be
// scalar strings, tools must be a sequence of strings. A comma-separated
// scalar of tool names is also accepted, matching host-platform behavior.
func (a *Agents) fieldTypes(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		if doc.Header == nil {
			continue
		}
		for _, key := range []string{"name", "description"} {
			node, ok := doc.Header.Get(key)
			if !ok {
				continue
			}
			if node.Kind != yaml.ScalarNode || strings.TrimSpace(node.Value) == "" {
				findings = append(findings, audit.Finding{
					Path:   doc.Path,
					Reason: fmt.Sprintf("field %q must be a non-empty string", key),
				})
			}
		}
		if node, ok := doc.Header.Get("tools"); ok {
			findings = append(findings, checkToolList(doc.Path, node)...)
		}
	}
	return audit.NewRateResult("field-types", findings, len(docs), 0)
}

// checkToolList validates the tools field shape.
func checkToolList(path string, node *yaml.Node) []audit.Finding {
	switch node.Kind {
	case yaml.SequenceNode:
		var findings []audit.Finding
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || strings.TrimSpace(item.Value) == "" {
				findings = append(findings, audit.Finding{
					Path:   path,
					Reason: "field \"tools\" must be a sequence of non-empty strings",
				})
				break
			}
		}
		return findings
	case yaml.ScalarNode:
		if strings.TrimSpace(node.Value) == "" {
			return []audit.Finding{{Path: path, Reason: "field \"tools\" is empty"}}
		}
		return nil
	default:
		return []audit.Finding{{
			Path: path, Reason: "field \"tools\" must be a sequence of strings",
		}}
	}
}

// metadataBoundary checks fence placement: the opening fence at byte 0 of
// the file and a matching closing fence.
func (a *Agents) metadataBoundary(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	for _, doc := range docs {
		if doc.HasFrontmatter {
			continue
		}
		trimmed := strings.TrimLeft(doc.Raw, " \t\r\n")
		switch {
		case strings.HasPrefix(doc.Raw, defs.FrontmatterFence):
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "closing metadata fence missing",
			})
		case strings.HasPrefix(trimmed, defs.FrontmatterFence):
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "content precedes the opening metadata fence",
			})
		default:
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "metadata fences missing",
			})
		}
	}
	return audit.NewRateResult("metadata-boundary", findings, len(docs), 0)
}
