package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file under root, making parent directories as needed.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestLoaderCheckRoot(t *testing.T) {
	t.Run("missing_root_is_corpus_not_found", func(t *testing.T) {
		l := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"))
		err := l.CheckRoot()
		if !errors.Is(err, ErrCorpusNotFound) {
			t.Fatalf("err = %v, want ErrCorpusNotFound", err)
		}
	})

	t.Run("root_is_file_not_dir", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "corpus", "not a dir")
		l := NewLoader(filepath.Join(root, "corpus"))
		if err := l.CheckRoot(); !errors.Is(err, ErrCorpusNotFound) {
			t.Fatalf("err = %v, want ErrCorpusNotFound", err)
		}
	})

	t.Run("existing_dir_passes", func(t *testing.T) {
		l := NewLoader(t.TempDir())
		if err := l.CheckRoot(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestLoaderLoadDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "agents/zeta.md", "---\nname: zeta\n---\nbody\n")
	writeFile(t, root, "agents/alpha.md", "---\nname: alpha\n---\nbody\n")
	writeFile(t, root, "agents/nested/beta.md", "---\nname: beta\n---\nbody\n")
	writeFile(t, root, "agents/notes.txt", "not a document\n")
	writeFile(t, root, "commands/run.md", "# Run\n")

	l := NewLoader(root)
	docs, err := l.LoadDocuments(KindAgent, "agents", "*.md")
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}

	wantPaths := []string{"agents/alpha.md", "agents/nested/beta.md", "agents/zeta.md"}
	if len(docs) != len(wantPaths) {
		t.Fatalf("got %d documents, want %d", len(docs), len(wantPaths))
	}
	for i, want := range wantPaths {
		if docs[i].Path != want {
			t.Errorf("docs[%d].Path = %q, want %q (sorted order)", i, docs[i].Path, want)
		}
		if docs[i].Kind != KindAgent {
			t.Errorf("docs[%d].Kind = %q, want agent", i, docs[i].Kind)
		}
	}
}

func TestLoaderLoadDocumentsMissingSubdir(t *testing.T) {
	l := NewLoader(t.TempDir())
	docs, err := l.LoadDocuments(KindCommand, "commands", "*.md")
	if err != nil {
		t.Fatalf("missing subdir must not be fatal: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents, want 0", len(docs))
	}
}

func TestLoaderLoadDocumentsMissingRoot(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "gone"))
	if _, err := l.LoadDocuments(KindAgent, "agents", "*.md"); !errors.Is(err, ErrCorpusNotFound) {
		t.Fatalf("err = %v, want ErrCorpusNotFound", err)
	}
}

func TestLoaderLoadTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# Corpus\n")
	writeFile(t, root, "context/deep/topic.md", "content\n")
	writeFile(t, root, "commands/run.md", "# Run\n")
	writeFile(t, root, ".factoria/audit.yaml", "thresholds: {}\n")
	writeFile(t, root, ".hidden-file", "skip\n")

	l := NewLoader(root)
	docs, err := l.LoadTree()
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}

	wantPaths := []string{"README.md", "commands/run.md", "context/deep/topic.md"}
	if len(docs) != len(wantPaths) {
		paths := make([]string, len(docs))
		for i, d := range docs {
			paths[i] = d.Path
		}
		t.Fatalf("got %v, want %v", paths, wantPaths)
	}
	for i, want := range wantPaths {
		if docs[i].Path != want {
			t.Errorf("docs[%d].Path = %q, want %q", i, docs[i].Path, want)
		}
	}
}

func TestLoaderDeterministicOrdering(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"c.md", "a.md", "b.md"} {
		writeFile(t, root, "agents/"+name, "---\nname: x\n---\n")
	}

	l := NewLoader(root)
	first, err := l.LoadDocuments(KindAgent, "agents", "*.md")
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.LoadDocuments(KindAgent, "agents", "*.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Errorf("ordering differs at %d: %q vs %q", i, first[i].Path, second[i].Path)
		}
	}
}
