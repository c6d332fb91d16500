package rules

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/audit"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/config"
	"github.com/swm-sink/la-factoria-content-factory-sub010/internal/corpus"
)

// Context validates the broader corpus tree, navigation aids included.
// Unlike the agents module, several steps here carry tolerance bands:
// a living documentation corpus is expected to show organic variance.
type Context struct {
	cfg *config.Config
}

// NewContext creates the context rule module.
func NewContext(cfg *config.Config) *Context {
	return &Context{cfg: cfg}
}

// Name implements audit.Module.
func (c *Context) Name() string { return ModuleContext }

// Load implements audit.Module. The context module scans every file under
// the corpus root, not just one subdirectory, because its reference graph
// and hierarchy checks span the whole corpus.
func (c *Context) Load(l *corpus.Loader) ([]corpus.Document, error) {
	return l.LoadTree()
}

// Steps implements audit.Module.
func (c *Context) Steps() []audit.Step {
	return []audit.Step{
		{Name: "directory-hierarchy", Run: c.directoryHierarchy},
		{Name: "naming-convention", Run: c.namingConvention},
		{Name: "file-categorization", Run: c.fileCategorization},
		{Name: "orphan-detection", Run: c.orphanDetection},
		{Name: "directory-depth", Run: c.directoryDepth},
		{Name: "file-size", Run: c.fileSize},
	}
}

// directoryHierarchy checks that every expected top-level directory is
// present. Presence is judged from document paths: a directory with no
// files at all is missing for a content corpus.
func (c *Context) directoryHierarchy(docs []corpus.Document) audit.StepResult {
	present := make(map[string]bool)
	for _, doc := range docs {
		if i := strings.IndexByte(doc.Path, '/'); i > 0 {
			present[doc.Path[:i]] = true
		}
	}

	var findings []audit.Finding
	for _, dir := range c.cfg.Context.ExpectedDirs {
		if !present[dir] {
			findings = append(findings, audit.Finding{
				Path: dir, Reason: "expected top-level directory missing",
			})
		}
	}

	result := audit.NewRateResult("directory-hierarchy", findings, len(c.cfg.Context.ExpectedDirs), 0)
	result.Detail = fmt.Sprintf("%d of %d expected directories present",
		len(c.cfg.Context.ExpectedDirs)-len(findings), len(c.cfg.Context.ExpectedDirs))
	return result
}

var lowercaseHyphenPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(?:\.[a-z0-9]+)+$`)

// namingConvention checks that every filename is lowercase-hyphenated,
// allow-listed exceptions aside.
func (c *Context) namingConvention(docs []corpus.Document) audit.StepResult {
	exceptions := make(map[string]bool, len(c.cfg.Context.NamingExceptions))
	for _, e := range c.cfg.Context.NamingExceptions {
		exceptions[e] = true
	}

	var findings []audit.Finding
	for _, doc := range docs {
		base := path.Base(doc.Path)
		if exceptions[base] {
			continue
		}
		if !lowercaseHyphenPattern.MatchString(base) {
			findings = append(findings, audit.Finding{
				Path: doc.Path, Reason: "filename is not lowercase-hyphenated",
			})
		}
	}
	return audit.NewRateResult("naming-convention", findings, len(docs),
		c.cfg.Thresholds.NamingViolationRate)
}

// fileCategorization computes a per-file pattern match rate from keywords
// implied by the containing directory's name. A file matching none of its
// directory's keywords is misplaced. Root-level files have no implied
// category and are skipped.
func (c *Context) fileCategorization(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	analysis := make([]map[string]any, 0, len(docs))
	scanned := 0

	for _, doc := range docs {
		dir := path.Dir(doc.Path)
		if dir == "." {
			continue
		}
		scanned++

		keywords := c.categoryKeywords(path.Base(dir))
		rate := matchRate(doc, keywords)
		analysis = append(analysis, map[string]any{
			"path":       doc.Path,
			"directory":  path.Base(dir),
			"match_rate": rate,
		})
		if rate == 0.0 {
			findings = append(findings, audit.Finding{
				Path:   doc.Path,
				Reason: fmt.Sprintf("no keyword of directory %q matched (match rate 0.0)", path.Base(dir)),
			})
		}
	}

	result := audit.NewRateResult("file-categorization", findings, scanned,
		c.cfg.Thresholds.MisplacementRate)
	result.Extra = map[string]any{"analysis": analysis}
	return result
}

// categoryKeywords derives the match patterns for a directory name:
// its hyphen/underscore-separated parts plus their singular forms, merged
// with any configured extras.
func (c *Context) categoryKeywords(dirName string) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(k string) {
		k = strings.ToLower(k)
		if k != "" && !seen[k] {
			seen[k] = true
			keywords = append(keywords, k)
		}
	}

	for _, part := range strings.FieldsFunc(dirName, func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		add(part)
		if strings.HasSuffix(part, "s") && len(part) > 2 {
			add(strings.TrimSuffix(part, "s"))
		}
	}
	for _, extra := range c.cfg.Context.CategoryKeywords[dirName] {
		add(extra)
	}
	return keywords
}

// matchRate is the fraction of keywords found in the file's own name or
// content.
func matchRate(doc corpus.Document, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}
	haystack := strings.ToLower(path.Base(doc.Path)) + "\n" + strings.ToLower(doc.Raw)
	matched := 0
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

// Cross-reference token syntaxes: @path tokens and markdown link targets.
var (
	atRefPattern   = regexp.MustCompile(`@([A-Za-z0-9_./-]+\.[A-Za-z0-9]+)`)
	linkRefPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)#?\s]+)(?:[#?][^)]*)?\)`)
)

// orphanDetection builds the set of all files referenced by any other
// file and reports every corpus file outside it, root-level entry points
// excepted.
func (c *Context) orphanDetection(docs []corpus.Document) audit.StepResult {
	entryPoints := make(map[string]bool, len(c.cfg.Context.EntryPoints))
	for _, e := range c.cfg.Context.EntryPoints {
		entryPoints[e] = true
	}

	referenced := make(map[string]bool)
	for _, doc := range docs {
		for _, ref := range extractReferences(doc.Raw) {
			for _, resolved := range resolveReference(doc.Path, ref) {
				if resolved != doc.Path { // self-references do not count
					referenced[resolved] = true
				}
			}
		}
	}

	var findings []audit.Finding
	for _, doc := range docs {
		base := path.Base(doc.Path)
		if entryPoints[base] && !strings.Contains(doc.Path, "/") {
			continue
		}
		if referenced[doc.Path] || referenced[base] {
			continue
		}
		findings = append(findings, audit.Finding{
			Path: doc.Path, Reason: "never referenced by any corpus file",
		})
	}
	return audit.NewRateResult("orphan-detection", findings, len(docs),
		c.cfg.Thresholds.OrphanRate)
}

// extractReferences collects cross-reference targets from raw content.
func extractReferences(raw string) []string {
	var refs []string
	for _, m := range atRefPattern.FindAllStringSubmatch(raw, -1) {
		refs = append(refs, m[1])
	}
	for _, m := range linkRefPattern.FindAllStringSubmatch(raw, -1) {
		target := m[1]
		if strings.Contains(target, "://") { // external URL, not a corpus file
			continue
		}
		refs = append(refs, target)
	}
	return refs
}

// resolveReference normalizes a reference into the candidate corpus paths
// it may denote: the cleaned token itself and the token resolved relative
// to the referrer's directory. A path-qualified token names exact paths
// only; a bare filename token matches by name via the orphan check's
// basename lookup, which only slash-free tokens can feed.
func resolveReference(referrer, ref string) []string {
	ref = strings.TrimPrefix(path.Clean(ref), "./")
	candidates := []string{ref}
	if dir := path.Dir(referrer); dir != "." {
		joined := path.Clean(path.Join(dir, ref))
		candidates = append(candidates, joined)
	}
	return candidates
}

// directoryDepth checks that no subdirectory nests deeper than the
// configured maximum relative to the corpus root.
func (c *Context) directoryDepth(docs []corpus.Document) audit.StepResult {
	depths := make(map[string]int)
	for _, doc := range docs {
		dir := path.Dir(doc.Path)
		for dir != "." {
			depths[dir] = strings.Count(dir, "/") + 1
			dir = path.Dir(dir)
		}
	}

	dirs := make([]string, 0, len(depths))
	for dir := range depths {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var findings []audit.Finding
	for _, dir := range dirs {
		if depths[dir] > c.cfg.Context.MaxDepth {
			findings = append(findings, audit.Finding{
				Path: dir,
				Reason: fmt.Sprintf("nesting depth %d exceeds maximum %d",
					depths[dir], c.cfg.Context.MaxDepth),
			})
		}
	}
	result := audit.NewRateResult("directory-depth", findings, len(dirs), 0)
	result.Detail = fmt.Sprintf("%d of %d directories exceed depth %d",
		len(findings), len(dirs), c.cfg.Context.MaxDepth)
	return result
}

// fileSize flags statistical outliers far below the minimum expected size
// for a substantive document. Only markdown documents count; navigation
// aids and data files have no size floor.
func (c *Context) fileSize(docs []corpus.Document) audit.StepResult {
	var findings []audit.Finding
	distribution := make([]map[string]any, 0, len(docs))
	scanned := 0

	for _, doc := range docs {
		if !strings.HasSuffix(doc.Path, ".md") {
			continue
		}
		scanned++
		sizeKB := float64(doc.Size) / 1024.0
		distribution = append(distribution, map[string]any{
			"path":    doc.Path,
			"size_kb": roundKB(sizeKB),
		})
		if sizeKB < c.cfg.Context.MinSizeKB {
			findings = append(findings, audit.Finding{
				Path: doc.Path,
				Reason: fmt.Sprintf("too_small: %.2fKB is below the %.2fKB minimum",
					sizeKB, c.cfg.Context.MinSizeKB),
			})
		}
	}

	result := audit.NewRateResult("file-size", findings, scanned,
		c.cfg.Thresholds.SizeOutlierRate)
	result.Extra = map[string]any{"distribution": distribution}
	return result
}

// roundKB rounds a size to two decimals for the distribution table.
func roundKB(kb float64) float64 {
	return float64(int(kb*100+0.5)) / 100
}
