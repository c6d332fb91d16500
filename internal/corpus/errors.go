// Package corpus loads configuration documents from a corpus directory
// tree. It splits YAML frontmatter from body content and yields immutable
// Document values for the rule evaluators. A malformed document is never
// an error at this layer; parse failures are recorded on the Document so
// downstream steps can report them as findings.
package corpus

import "errors"

// Sentinel errors for corpus loading.
var (
	// ErrCorpusNotFound indicates the corpus root directory does not exist.
	// This is the only fatal condition in the validation pipeline.
	ErrCorpusNotFound = errors.New("corpus: root directory not found")
)
