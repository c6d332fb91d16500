package config

// Config is the complete audit configuration. Thresholds, allow-lists, and
// keyword patterns are data, not code: observed cutoffs vary between
// validation passes, so every step reads its tolerance from here.
type Config struct {
	Thresholds ThresholdConfig `yaml:"thresholds"`
	Agents     AgentsConfig    `yaml:"agents"`
	Context    ContextConfig   `yaml:"context"`
	Commands   CommandsConfig  `yaml:"commands"`
}

// ThresholdConfig holds the tolerance band for each rate-gated step.
// All values are fractions in [0, 1]. A step passes iff its violation
// rate is strictly below the threshold; a rate equal to the threshold
// fails. Zero-tolerance steps use a threshold of 0.
type ThresholdConfig struct {
	// NamingViolationRate gates the context naming-convention step.
	NamingViolationRate float64 `yaml:"naming_violation_rate"`

	// MisplacementRate gates the context file-categorization step.
	MisplacementRate float64 `yaml:"misplacement_rate"`

	// OrphanRate gates the context orphan-detection step.
	OrphanRate float64 `yaml:"orphan_rate"`

	// SizeOutlierRate gates the context file-size step.
	SizeOutlierRate float64 `yaml:"size_outlier_rate"`

	// FormattingIssueRate gates the commands formatting-compliance step.
	FormattingIssueRate float64 `yaml:"formatting_issue_rate"`

	// MissingSectionRate gates the commands required-sections step.
	MissingSectionRate float64 `yaml:"missing_section_rate"`
}

// AgentsConfig configures the agents module rules. Every agents step is
// zero-tolerance; only the field sets are configurable.
type AgentsConfig struct {
	// RequiredFields is the exact frontmatter field set an agent must
	// declare. Missing and extra fields are both violations.
	RequiredFields []string `yaml:"required_fields"`

	// ForbiddenFields is the schema-drift denylist. These fields must
	// never appear in agent frontmatter.
	ForbiddenFields []string `yaml:"forbidden_fields"`
}

// ContextConfig configures the context module rules.
type ContextConfig struct {
	// ExpectedDirs are the top-level directories the corpus must contain.
	ExpectedDirs []string `yaml:"expected_dirs"`

	// NamingExceptions are filenames exempt from the lowercase-hyphenated
	// naming convention (index files and root directives).
	NamingExceptions []string `yaml:"naming_exceptions"`

	// EntryPoints are root-level files exempt from orphan detection.
	EntryPoints []string `yaml:"entry_points"`

	// MaxDepth is the maximum allowed subdirectory nesting depth
	// relative to the corpus root.
	MaxDepth int `yaml:"max_depth"`

	// MinSizeKB is the minimum expected size for a substantive document.
	// Smaller files are flagged as too_small outliers.
	MinSizeKB float64 `yaml:"min_size_kb"`

	// CategoryKeywords maps a directory name to extra keyword patterns
	// used by the categorization step, supplementing the patterns derived
	// from the directory name itself.
	CategoryKeywords map[string][]string `yaml:"category_keywords"`
}

// CommandsConfig configures the commands module rules.
type CommandsConfig struct {
	// InstructionalHeadings are the recognized section headings at least
	// one of which every command document must carry.
	InstructionalHeadings []string `yaml:"instructional_headings"`

	// ArgumentHeadings are the headings that satisfy the parameter
	// documentation requirement for argument-taking commands.
	ArgumentHeadings []string `yaml:"argument_headings"`
}
