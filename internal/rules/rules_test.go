package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/config"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/corpus"
)

// buildCorpus writes the given relative-path → content map into a temp
// corpus root and returns a loader over it.
func buildCorpus(t *testing.T, files map[string]string) *corpus.Loader {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return corpus.NewLoader(root)
}

// runStep loads a module's documents and executes the named step.
func runStep(t *testing.T, m audit.Module, l *corpus.Loader, name string) audit.StepResult {
	t.Helper()
	docs, err := m.Load(l)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, step := range m.Steps() {
		if step.Name == name {
			return step.Run(docs)
		}
	}
	t.Fatalf("module %s has no step %q", m.Name(), name)
	return audit.StepResult{}
}

// findingReasons extracts the reason of every finding for a path.
func findingReasons(result audit.StepResult, path string) []string {
	var reasons []string
	for _, f := range result.Findings {
		if f.Path == path {
			reasons = append(reasons, f.Reason)
		}
	}
	return reasons
}

func TestByName(t *testing.T) {
	cfg := config.NewDefaultConfig()
	for _, name := range []string{ModuleAgents, ModuleContext, ModuleCommands} {
		m, err := ByName(cfg, name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("Name() = %q, want %q", m.Name(), name)
		}
	}
	if _, err := ByName(cfg, "unknown"); err == nil {
		t.Error("ByName(unknown) = nil error, want error")
	}
}

func TestAllCanonicalOrder(t *testing.T) {
	modules := All(config.NewDefaultConfig())
	want := []string{ModuleAgents, ModuleContext, ModuleCommands}
	if len(modules) != len(want) {
		t.Fatalf("got %d modules, want %d", len(modules), len(want))
	}
	for i, m := range modules {
		if m.Name() != want[i] {
			t.Errorf("modules[%d] = %q, want %q", i, m.Name(), want[i])
		}
	}
}

func TestExtractHeadings(t *testing.T) {
	body := "# Title\n\nprose\n\n## Usage\n\n### Deep Dive  \nnot # a heading\n"
	headings := extractHeadings(body)

	want := []heading{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "Usage"},
		{Level: 3, Text: "Deep Dive"},
	}
	if len(headings) != len(want) {
		t.Fatalf("got %v, want %v", headings, want)
	}
	for i := range want {
		if headings[i] != want[i] {
			t.Errorf("headings[%d] = %v, want %v", i, headings[i], want[i])
		}
	}
}

func TestKebabize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Run Tests", "run-tests"},
		{"How to Use It", "how-to-use-it"},
		{"  Spaced  Out  ", "spaced-out"},
		{"already-kebab", "already-kebab"},
		{"With (Parens) & Symbols!", "with-parens-symbols"},
	}
	for _, tt := range tests {
		if got := kebabize(tt.in); got != tt.want {
			t.Errorf("kebabize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
