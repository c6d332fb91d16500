package corpus

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads documents from a corpus root. It is read-only and holds no
// state beyond the root path; every Load call re-reads the tree.
type Loader struct {
	root string
}

// NewLoader creates a Loader for the given corpus root directory.
func NewLoader(root string) *Loader {
	return &Loader{root: filepath.Clean(root)}
}

// Root returns the corpus root path.
func (l *Loader) Root() string {
	return l.root
}

// CheckRoot verifies the corpus root exists. A missing root is the only
// fatal condition in the whole pipeline.
func (l *Loader) CheckRoot() error {
	info, err := os.Stat(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrCorpusNotFound, l.root)
		}
		return fmt.Errorf("stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrCorpusNotFound, l.root)
	}
	return nil
}

// LoadDocuments reads every file under root/subdir matching glob and
// returns them as Documents of the given kind, sorted by path. A missing
// subdirectory yields zero documents; individual unreadable files are
// skipped with a warning rather than failing the run.
func (l *Loader) LoadDocuments(kind Kind, subdir, glob string) ([]Document, error) {
	if err := l.CheckRoot(); err != nil {
		return nil, err
	}

	dir := filepath.Join(l.root, subdir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var docs []Document
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if isHiddenName(entry.Name()) && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		matched, matchErr := filepath.Match(glob, entry.Name())
		if matchErr != nil {
			return fmt.Errorf("bad glob %q: %w", glob, matchErr)
		}
		if !matched {
			return nil
		}
		doc, ok := l.readDocument(path, kind)
		if ok {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sortDocuments(docs)
	return docs, nil
}

// LoadTree reads every regular file under the corpus root, hidden
// directories excluded, sorted by path. Used by the context module, which
// operates on the broader corpus including non-document navigation aids.
func (l *Loader) LoadTree() ([]Document, error) {
	if err := l.CheckRoot(); err != nil {
		return nil, err
	}

	var docs []Document
	err := filepath.WalkDir(l.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if isHiddenName(entry.Name()) && path != l.root {
				return filepath.SkipDir
			}
			return nil
		}
		if isHiddenName(entry.Name()) {
			return nil
		}
		doc, ok := l.readDocument(path, KindContext)
		if ok {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.root, err)
	}

	sortDocuments(docs)
	return docs, nil
}

// readDocument reads one file into a Document. Returns ok=false when the
// file could not be read; the defect is logged, never raised.
func (l *Loader) readDocument(path string, kind Kind) (Document, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("corpus: skipping unreadable file", "path", path, "error", err)
		return Document{}, false
	}
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		rel = path
	}
	return newDocument(filepath.ToSlash(rel), kind, raw), true
}

// sortDocuments orders documents by path so evidence ordering is
// deterministic across runs.
func sortDocuments(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
}

// isHiddenName reports whether a file or directory name is hidden
// (dot-prefixed). The .factoria config directory and VCS metadata are
// never part of the audited corpus.
func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
