package rules

import (
	"strings"
	"testing"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/config"
)

// filler pads a document above the default 1KB size floor so size checks
// stay out of unrelated tests.
func filler(title string) string {
	return "# " + title + "\n\n" + strings.Repeat("Substantive corpus content. ", 40)
}

func TestContextDirectoryHierarchy(t *testing.T) {
	t.Run("all_present", func(t *testing.T) {
		l := buildCorpus(t, map[string]string{
			"agents/a.md":   filler("A"),
			"context/b.md":  filler("B"),
			"commands/c.md": filler("C"),
		})
		result := runStep(t, NewContext(config.NewDefaultConfig()), l, "directory-hierarchy")
		if result.Status != audit.StatusPass {
			t.Errorf("FAIL: %v", result.Findings)
		}
		if !strings.Contains(result.Detail, "3 of 3") {
			t.Errorf("Detail = %q, want 3 of 3", result.Detail)
		}
	})

	t.Run("missing_directory", func(t *testing.T) {
		l := buildCorpus(t, map[string]string{
			"agents/a.md":  filler("A"),
			"context/b.md": filler("B"),
		})
		result := runStep(t, NewContext(config.NewDefaultConfig()), l, "directory-hierarchy")
		if result.Status != audit.StatusFail {
			t.Fatal("expected FAIL")
		}
		if len(result.Findings) != 1 || result.Findings[0].Path != "commands" {
			t.Errorf("findings = %v, want commands missing", result.Findings)
		}
	})
}

func TestContextNamingConvention(t *testing.T) {
	l := buildCorpus(t, map[string]string{
		"context/good-name.md": filler("Good"),
		"context/Bad_Name.md":  filler("Bad"),
		"context/UPPERCASE.md": filler("Upper"),
		"README.md":            filler("Readme"),
		"context/also.fine.md": filler("Fine"),
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "naming-convention")

	if result.Status != audit.StatusFail {
		t.Fatal("expected FAIL: 2 of 5 files violate")
	}
	wantViolations := []string{"context/Bad_Name.md", "context/UPPERCASE.md"}
	if len(result.Findings) != len(wantViolations) {
		t.Fatalf("findings = %v, want %v", result.Findings, wantViolations)
	}
	for i, want := range wantViolations {
		if result.Findings[i].Path != want {
			t.Errorf("findings[%d].Path = %q, want %q", i, result.Findings[i].Path, want)
		}
	}
}

func TestContextNamingToleranceBand(t *testing.T) {
	// 1 violation out of 25 files = 4% < 5% threshold: the step passes
	// while still listing the violating file as evidence.
	files := map[string]string{"context/Bad_Name.md": filler("Bad")}
	for i := 0; i < 24; i++ {
		files["context/doc-"+string(rune('a'+i))+".md"] = filler("Doc")
	}
	l := buildCorpus(t, files)
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "naming-convention")

	if result.Status != audit.StatusPass {
		t.Errorf("status = FAIL at 4%% violation rate, want PASS under 5%% threshold")
	}
	if len(result.Findings) != 1 {
		t.Errorf("findings = %v, evidence must still be listed", result.Findings)
	}
}

func TestContextFileCategorization(t *testing.T) {
	l := buildCorpus(t, map[string]string{
		"agents/helper-agent.md": filler("Helper Agent"),
		"commands/deploy.md":     "# Deploy\n\nA command for deploying.\n" + filler("Deploy"),
		"context/unrelated.md":   "# Totally Unrelated\n\nNothing matching here at all.\n",
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "file-categorization")

	if got := findingReasons(result, "context/unrelated.md"); len(got) != 1 || !strings.Contains(got[0], "match rate 0.0") {
		t.Errorf("unrelated.md reasons = %v", got)
	}
	if got := findingReasons(result, "agents/helper-agent.md"); len(got) != 0 {
		t.Errorf("helper-agent.md flagged despite matching name: %v", got)
	}

	analysis, ok := result.Extra["analysis"].([]map[string]any)
	if !ok {
		t.Fatalf("Extra[analysis] = %T, want table", result.Extra["analysis"])
	}
	if len(analysis) != 3 {
		t.Errorf("analysis rows = %d, want 3", len(analysis))
	}
}

func TestContextOrphanDetection(t *testing.T) {
	// x.md references y.md via an @token; z.md is referenced by nobody.
	l := buildCorpus(t, map[string]string{
		"README.md":    "# Corpus\n\nSee [x](context/x.md).\n",
		"context/x.md": filler("X") + "\n\nUses @context/y.md for background.\n",
		"context/y.md": filler("Y"),
		"context/z.md": filler("Z"),
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "orphan-detection")

	if result.Status != audit.StatusFail {
		t.Fatal("expected FAIL: z.md is orphaned")
	}
	if got := findingReasons(result, "context/y.md"); len(got) != 0 {
		t.Errorf("y.md is referenced, must not be orphaned: %v", got)
	}
	if got := findingReasons(result, "context/x.md"); len(got) != 0 {
		t.Errorf("x.md is referenced from README, must not be orphaned: %v", got)
	}
	if got := findingReasons(result, "context/z.md"); len(got) != 1 || got[0] != "never referenced by any corpus file" {
		t.Errorf("z.md reasons = %v", got)
	}
	// README.md is on the entry-point allow-list.
	if got := findingReasons(result, "README.md"); len(got) != 0 {
		t.Errorf("README.md is an entry point, must not be orphaned: %v", got)
	}
}

func TestContextOrphanSameBasename(t *testing.T) {
	// A path-qualified link to context/a/overview.md must not clear the
	// unreferenced context/b/overview.md that shares its filename.
	l := buildCorpus(t, map[string]string{
		"README.md":             "# Corpus\n\nSee [overview](context/a/overview.md).\n",
		"context/a/overview.md": filler("A"),
		"context/b/overview.md": filler("B"),
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "orphan-detection")

	if result.Status != audit.StatusFail {
		t.Fatal("expected FAIL: context/b/overview.md is orphaned")
	}
	if got := findingReasons(result, "context/a/overview.md"); len(got) != 0 {
		t.Errorf("referenced file flagged as orphan: %v", got)
	}
	if got := findingReasons(result, "context/b/overview.md"); len(got) != 1 {
		t.Errorf("unreferenced same-named file not flagged: %v", got)
	}
}

func TestContextOrphanBareToken(t *testing.T) {
	// A slash-free @token still matches any file with that name.
	l := buildCorpus(t, map[string]string{
		"README.md":           "# Corpus\n\nBackground lives in @glossary.md.\n",
		"context/glossary.md": filler("Glossary"),
		"context/appendix.md": filler("Appendix"),
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "orphan-detection")

	if got := findingReasons(result, "context/glossary.md"); len(got) != 0 {
		t.Errorf("name-referenced file flagged as orphan: %v", got)
	}
	if got := findingReasons(result, "context/appendix.md"); len(got) != 1 {
		t.Errorf("unreferenced file not flagged: %v", got)
	}
}

func TestContextOrphanRelativeReference(t *testing.T) {
	l := buildCorpus(t, map[string]string{
		"README.md":                 "# Corpus\n\n[guide](context/guide.md)\n",
		"context/guide.md":          filler("Guide") + "\n\nSee [details](nested/details.md).\n",
		"context/nested/details.md": filler("Details"),
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "orphan-detection")

	if got := findingReasons(result, "context/nested/details.md"); len(got) != 0 {
		t.Errorf("relative link target flagged as orphan: %v", got)
	}
}

func TestContextDirectoryDepth(t *testing.T) {
	l := buildCorpus(t, map[string]string{
		"context/a/b/c/d/too-deep.md": filler("Deep"),
		"context/ok.md":               filler("OK"),
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "directory-depth")

	if result.Status != audit.StatusFail {
		t.Fatal("expected FAIL: context/a/b/c/d has depth 5")
	}
	if len(result.Findings) != 1 || result.Findings[0].Path != "context/a/b/c/d" {
		t.Errorf("findings = %v, want context/a/b/c/d", result.Findings)
	}
	if !strings.Contains(result.Findings[0].Reason, "depth 5 exceeds maximum 4") {
		t.Errorf("reason = %q", result.Findings[0].Reason)
	}
	if result.Detail != "1 of 5 directories exceed depth 4" {
		t.Errorf("detail = %q", result.Detail)
	}
}

func TestContextFileSize(t *testing.T) {
	l := buildCorpus(t, map[string]string{
		"context/substantive.md": filler("Substantive"),
		"context/tiny.md":        "# Tiny\n",
		"context/data.json":      "{}",
	})
	result := runStep(t, NewContext(config.NewDefaultConfig()), l, "file-size")

	if got := findingReasons(result, "context/tiny.md"); len(got) != 1 || !strings.HasPrefix(got[0], "too_small:") {
		t.Errorf("tiny.md reasons = %v", got)
	}
	if got := findingReasons(result, "context/data.json"); len(got) != 0 {
		t.Errorf("non-markdown file must have no size floor: %v", got)
	}

	distribution, ok := result.Extra["distribution"].([]map[string]any)
	if !ok {
		t.Fatalf("Extra[distribution] = %T, want table", result.Extra["distribution"])
	}
	if len(distribution) != 2 {
		t.Errorf("distribution rows = %d, want 2 (markdown only)", len(distribution))
	}
}

func TestContextCategoryKeywordsFromConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Context.CategoryKeywords = map[string][]string{
		"misc": {"sundry"},
	}
	l := buildCorpus(t, map[string]string{
		"misc/sundry-notes.md": filler("Sundry Notes"),
	})
	result := runStep(t, NewContext(cfg), l, "file-categorization")

	if got := findingReasons(result, "misc/sundry-notes.md"); len(got) != 0 {
		t.Errorf("configured keyword not honored: %v", got)
	}
}
