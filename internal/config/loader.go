package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/defs"
)

// Load reads the audit configuration from the given file path and merges
// it over the defaults. A missing file yields the defaults; invalid YAML
// is reported as an error so a broken config never silently loosens a
// threshold.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("audit config not found, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadForCorpus loads the configuration from the corpus-local location
// (.factoria/audit.yaml under the corpus root).
func LoadForCorpus(root string) (*Config, error) {
	return Load(filepath.Join(root, defs.ConfigDir, defs.AuditYAML))
}
