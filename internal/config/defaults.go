package config

import "github.com/swm-sink/la-factoria-content-factory-sub010/internal/defs"

// Default threshold constants to avoid magic numbers.
const (
	DefaultNamingViolationRate = 0.05
	DefaultMisplacementRate    = 0.10
	DefaultOrphanRate          = 0.0
	DefaultSizeOutlierRate     = 0.05
	DefaultFormattingIssueRate = 0.15
	DefaultMissingSectionRate  = 0.15

	DefaultMaxDepth  = 4
	DefaultMinSizeKB = 1.0
)

// NewDefaultConfig returns the built-in audit configuration. A corpus
// without an audit.yaml is validated against exactly these values.
func NewDefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			NamingViolationRate: DefaultNamingViolationRate,
			MisplacementRate:    DefaultMisplacementRate,
			OrphanRate:          DefaultOrphanRate,
			SizeOutlierRate:     DefaultSizeOutlierRate,
			FormattingIssueRate: DefaultFormattingIssueRate,
			MissingSectionRate:  DefaultMissingSectionRate,
		},
		Agents: AgentsConfig{
			RequiredFields:  []string{"name", "description", "tools"},
			ForbiddenFields: []string{"model", "version", "priority", "author", "temperature"},
		},
		Context: ContextConfig{
			ExpectedDirs:     []string{defs.AgentsDir, defs.ContextDir, defs.CommandsDir},
			NamingExceptions: []string{"README.md", "CLAUDE.md", "INDEX.md", "index.md"},
			EntryPoints:      []string{"README.md", "CLAUDE.md", "index.md"},
			MaxDepth:         DefaultMaxDepth,
			MinSizeKB:        DefaultMinSizeKB,
		},
		Commands: CommandsConfig{
			InstructionalHeadings: []string{
				"Instructions", "Usage", "How to Use", "Examples", "Steps", "Process",
			},
			ArgumentHeadings: []string{"Arguments", "Parameters", "Options"},
		},
	}
}
