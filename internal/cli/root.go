// Package cli wires the factoria command tree. All user-facing behavior
// lives behind cobra commands; the audit pipeline itself is in
// internal/audit and internal/rules.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swm-sink/la-factoria-content-factory-sub010/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "factoria",
	Short: "Corpus validation framework for La Factoria configuration documents",
	Long: `factoria audits a corpus of AI coding-assistant configuration
documents (agents, context files, commands) against corpus-level
invariants: metadata contracts, naming and placement conventions, and
cross-reference integrity.

Each run produces a structured pass/fail report with per-document
evidence. The system passes only when every module passes; an aggregate
percentage never overrides a failing module.`,
	Version: version.GetVersion(),
}

// Execute runs the root command. It is the only entry point used by
// cmd/factoria.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("factoria %s\n", version.GetFullVersion()))
}
