package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/rules"
)

// pickModules prompts for the modules to run when none were given on the
// command line and a terminal is attached. Selecting nothing runs all
// modules.
func pickModules() ([]string, error) {
	selected := []string{rules.ModuleAgents, rules.ModuleContext, rules.ModuleCommands}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Modules to validate").
			Description("Space toggles, enter confirms. Empty selection runs everything.").
			Options(
				huh.NewOption("Agents — metadata contracts", rules.ModuleAgents).Selected(true),
				huh.NewOption("Context — structure and references", rules.ModuleContext).Selected(true),
				huh.NewOption("Commands — instruction documents", rules.ModuleCommands).Selected(true),
			).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, fmt.Errorf("audit cancelled")
		}
		return nil, fmt.Errorf("module selection: %w", err)
	}

	if len(selected) == 0 {
		return []string{rules.ModuleAgents, rules.ModuleContext, rules.ModuleCommands}, nil
	}
	return selected, nil
}
