package defs

// Corpus subdirectory names under the corpus root.
const (
	// AgentsDir holds agent definition documents.
	AgentsDir = "agents"

	// ContextDir holds context documents and navigation aids.
	ContextDir = "context"

	// CommandsDir holds user-facing command documents.
	CommandsDir = "commands"
)

// Configuration file locations.
const (
	// ConfigDir is the corpus-local configuration directory.
	ConfigDir = ".factoria"

	// AuditYAML is the audit configuration file under ConfigDir.
	AuditYAML = "audit.yaml"
)

// Report artifact names.
const (
	// SystemReportMD is the default filename for the full system report.
	SystemReportMD = "validation_report.md"
)

// FrontmatterFence delimits the metadata block of agent and command
// documents. It must appear at byte 0 of the file.
const FrontmatterFence = "---"

// DocGlob matches the document files each module scans.
const DocGlob = "*.md"
