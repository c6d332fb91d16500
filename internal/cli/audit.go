package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/config"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/corpus"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/report"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/rules"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/ui"
)

// ErrAuditFailed is returned when the corpus does not pass validation.
// Callers (CI included) must treat any module failure as a hard failure
// regardless of the aggregate percentage shown.
var ErrAuditFailed = errors.New("audit: corpus validation failed")

// auditOptions collects the audit command's flag values.
type auditOptions struct {
	modules    []string
	configPath string
	outputPath string
	jsonOut    bool
	noColor    bool
	failFast   bool
	watch      bool
	headless   bool
}

var auditOpts auditOptions

var auditCmd = &cobra.Command{
	Use:   "audit [corpus-root]",
	Short: "Validate the document corpus and emit a report",
	Long: `Audit runs every rule module (agents, context, commands) against the
corpus rooted at the given directory (default: current directory) and
prints a validation report.

The exit code is non-zero when any module fails. Thresholds and
allow-lists are read from .factoria/audit.yaml under the corpus root.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runAudit,
}

func init() {
	auditCmd.Flags().StringSliceVarP(&auditOpts.modules, "module", "m", nil,
		"modules to run (agents, context, commands); default: all")
	auditCmd.Flags().StringVarP(&auditOpts.configPath, "config", "c", "",
		"path to audit configuration (default: <root>/.factoria/audit.yaml)")
	auditCmd.Flags().StringVarP(&auditOpts.outputPath, "output", "o", "",
		"write the markdown report to this file (overwritten each run)")
	auditCmd.Flags().BoolVar(&auditOpts.jsonOut, "json", false,
		"print the machine-readable JSON payload instead of markdown")
	auditCmd.Flags().BoolVar(&auditOpts.noColor, "no-color", false,
		"disable colored output")
	auditCmd.Flags().BoolVar(&auditOpts.failFast, "fail-fast", false,
		"stop after the first failing module")
	auditCmd.Flags().BoolVarP(&auditOpts.watch, "watch", "w", false,
		"re-run the audit when the corpus changes")
	auditCmd.Flags().BoolVar(&auditOpts.headless, "headless", false,
		"force non-interactive mode (no prompts, no animation)")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	hm := ui.NewHeadlessManager()
	if auditOpts.headless || auditOpts.jsonOut {
		hm.ForceHeadless(true)
	}

	names := auditOpts.modules
	if len(names) == 0 {
		if !hm.IsHeadless() && !auditOpts.watch {
			picked, err := pickModules()
			if err != nil {
				return err
			}
			names = picked
		} else {
			names = []string{rules.ModuleAgents, rules.ModuleContext, rules.ModuleCommands}
		}
	}

	if auditOpts.watch {
		return watchAndAudit(cmd.Context(), root, names, hm)
	}
	return auditOnce(root, names, hm)
}

// auditOnce executes one full audit pass and renders the results.
func auditOnce(root string, names []string, hm *ui.HeadlessManager) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	modules := make([]audit.Module, 0, len(names))
	for _, name := range names {
		m, err := rules.ByName(cfg, name)
		if err != nil {
			return err
		}
		modules = append(modules, m)
	}

	loader := corpus.NewLoader(root)
	runner := audit.NewRunner(loader)
	runner.FailFast = auditOpts.failFast

	tracker := ui.NewTracker(hm, os.Stderr)
	runner.OnStep = tracker.Step

	// A single-module run emits a module-scoped report; anything else
	// emits the system report with the zero-tolerance gate.
	if len(modules) == 1 {
		mr, err := runner.RunModule(modules[0])
		tracker.Done()
		if err != nil {
			return err
		}
		return emitModule(mr, hm)
	}

	sr, err := runner.RunSystem(modules)
	tracker.Done()
	if err != nil {
		return err
	}
	return emitSystem(sr, hm)
}

// loadConfig reads the audit configuration from the --config path or the
// corpus-local default.
func loadConfig(root string) (*config.Config, error) {
	if auditOpts.configPath != "" {
		return config.Load(auditOpts.configPath)
	}
	return config.LoadForCorpus(root)
}

// emitSystem renders a system report to stdout (and --output) and maps
// the overall gate onto the process exit contract.
func emitSystem(sr audit.SystemReport, hm *ui.HeadlessManager) error {
	markdown := report.RenderMarkdown(sr)

	if auditOpts.outputPath != "" {
		if err := report.WriteFile(auditOpts.outputPath, []byte(markdown)); err != nil {
			return err
		}
	}

	if auditOpts.jsonOut {
		payload, err := report.RenderJSON(sr)
		if err != nil {
			return err
		}
		os.Stdout.Write(payload)
	} else {
		isTTY := !hm.IsHeadless() && !auditOpts.noColor
		fmt.Println(report.SummaryCard(sr, auditOpts.noColor || hm.IsHeadless()))
		fmt.Print(report.RenderTerminal(markdown, isTTY))
	}

	if sr.Status != audit.StatusPass {
		return fmt.Errorf("%w: %d of %d modules passed",
			ErrAuditFailed, sr.ModulesPassed, sr.ModulesTotal)
	}
	return nil
}

// emitModule renders a single-module report.
func emitModule(mr audit.ModuleReport, hm *ui.HeadlessManager) error {
	markdown := report.RenderModuleMarkdown(mr)

	if auditOpts.outputPath != "" {
		if err := report.WriteFile(auditOpts.outputPath, []byte(markdown)); err != nil {
			return err
		}
	}

	if auditOpts.jsonOut {
		payload, err := report.RenderModuleJSON(mr)
		if err != nil {
			return err
		}
		os.Stdout.Write(payload)
	} else {
		isTTY := !hm.IsHeadless() && !auditOpts.noColor
		fmt.Print(report.RenderTerminal(markdown, isTTY))
	}

	if mr.Status != audit.StatusPass {
		return fmt.Errorf("%w: module %s passed %d of %d steps",
			ErrAuditFailed, mr.Module, mr.StepsPassed, mr.StepsTotal)
	}
	return nil
}
