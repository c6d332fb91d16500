package config

// Validate checks the audit configuration for correctness. All thresholds
// must be fractions in [0, 1]; structural limits must be positive.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateThresholds(&cfg.Thresholds)...)
	errs = append(errs, validateContext(&cfg.Context)...)
	errs = append(errs, validateAgents(&cfg.Agents)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// thresholdFields pairs each threshold with its config path for
// range-checking without repeating the same block six times.
func thresholdFields(t *ThresholdConfig) map[string]float64 {
	return map[string]float64{
		"thresholds.naming_violation_rate": t.NamingViolationRate,
		"thresholds.misplacement_rate":     t.MisplacementRate,
		"thresholds.orphan_rate":           t.OrphanRate,
		"thresholds.size_outlier_rate":     t.SizeOutlierRate,
		"thresholds.formatting_issue_rate": t.FormattingIssueRate,
		"thresholds.missing_section_rate":  t.MissingSectionRate,
	}
}

// thresholdFieldOrder fixes the reporting order of threshold errors.
var thresholdFieldOrder = []string{
	"thresholds.naming_violation_rate",
	"thresholds.misplacement_rate",
	"thresholds.orphan_rate",
	"thresholds.size_outlier_rate",
	"thresholds.formatting_issue_rate",
	"thresholds.missing_section_rate",
}

func validateThresholds(t *ThresholdConfig) []ValidationError {
	fields := thresholdFields(t)
	var errs []ValidationError
	for _, field := range thresholdFieldOrder {
		v := fields[field]
		if v < 0 || v > 1 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "must be a fraction between 0.0 and 1.0",
				Value:   v,
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	return errs
}

func validateContext(c *ContextConfig) []ValidationError {
	var errs []ValidationError

	if c.MaxDepth < 1 {
		errs = append(errs, ValidationError{
			Field:   "context.max_depth",
			Message: "must be at least 1",
			Value:   c.MaxDepth,
			Wrapped: ErrInvalidConfig,
		})
	}

	if c.MinSizeKB < 0 {
		errs = append(errs, ValidationError{
			Field:   "context.min_size_kb",
			Message: "must be non-negative",
			Value:   c.MinSizeKB,
			Wrapped: ErrInvalidConfig,
		})
	}

	if len(c.ExpectedDirs) == 0 {
		errs = append(errs, ValidationError{
			Field:   "context.expected_dirs",
			Message: "at least one expected directory is required",
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

func validateAgents(a *AgentsConfig) []ValidationError {
	var errs []ValidationError

	if len(a.RequiredFields) == 0 {
		errs = append(errs, ValidationError{
			Field:   "agents.required_fields",
			Message: "at least one required field is required",
			Wrapped: ErrInvalidConfig,
		})
	}

	// A field cannot be required and forbidden at the same time.
	forbidden := make(map[string]bool, len(a.ForbiddenFields))
	for _, f := range a.ForbiddenFields {
		forbidden[f] = true
	}
	for _, f := range a.RequiredFields {
		if forbidden[f] {
			errs = append(errs, ValidationError{
				Field:   "agents.forbidden_fields",
				Message: "field is also listed in required_fields",
				Value:   f,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	return errs
}
