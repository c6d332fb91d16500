package report

import (
	"encoding/json"
	"fmt"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
)

// RenderJSON renders the machine-readable system payload.
func RenderJSON(r audit.SystemReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal system report: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderModuleJSON renders the machine-readable payload for one module.
func RenderModuleJSON(m audit.ModuleReport) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal module report: %w", err)
	}
	return append(data, '\n'), nil
}
