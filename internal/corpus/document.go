package corpus

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies which module a document belongs to, determined by its
// containing directory.
type Kind string

const (
	KindAgent   Kind = "agent"
	KindContext Kind = "context"
	KindCommand Kind = "command"
)

// HeaderField is a single declared frontmatter field. The value is kept as
// a yaml.Node so rule evaluators can inspect its shape (scalar vs sequence)
// without re-parsing.
type HeaderField struct {
	Key   string
	Value *yaml.Node
}

// Header is the ordered frontmatter mapping of a document. Field order
// matches declaration order in the file.
type Header struct {
	Fields []HeaderField
}

// Get returns the value node for a key and whether it was declared.
func (h *Header) Get(key string) (*yaml.Node, bool) {
	if h == nil {
		return nil, false
	}
	for _, f := range h.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the declared field names in declaration order.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}
	keys := make([]string, len(h.Fields))
	for i, f := range h.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Document is a single configuration file, materialized once per run and
// immutable thereafter.
type Document struct {
	// Path is the slash-separated path relative to the corpus root.
	Path string

	// Kind is the owning module, determined by directory.
	Kind Kind

	// Raw is the complete file content. Boundary rules inspect it directly.
	Raw string

	// Header is the parsed frontmatter mapping, nil when the document has
	// no frontmatter or parsing failed.
	Header *Header

	// Body is the content after the closing frontmatter fence, or the
	// whole file when no frontmatter is present.
	Body string

	// HasFrontmatter reports whether an opening fence sits at byte 0 and
	// a closing fence was found.
	HasFrontmatter bool

	// HeaderParseFailed marks frontmatter that was delimited correctly but
	// did not parse as YAML.
	HeaderParseFailed bool

	// Size is the file size in bytes.
	Size int64
}

// splitFrontmatter separates a leading fenced metadata block from the body.
// The opening fence must sit at byte 0; anything else means no frontmatter.
// Returns (headerText, body, found).
func splitFrontmatter(raw string) (string, string, bool) {
	if !strings.HasPrefix(raw, "---\n") && !strings.HasPrefix(raw, "---\r\n") && raw != "---" {
		return "", raw, false
	}
	rest := strings.TrimPrefix(raw, "---")
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	// Closing fence: a line that is exactly "---".
	for _, marker := range []string{"\n---\n", "\n---\r\n"} {
		if idx := strings.Index(rest, marker); idx >= 0 {
			return rest[:idx], rest[idx+len(marker):], true
		}
	}
	if strings.HasSuffix(rest, "\n---") {
		return strings.TrimSuffix(rest, "---"), "", true
	}
	return "", raw, false
}

// parseHeader parses frontmatter text into an ordered Header. Returns an
// error when the text is not a YAML mapping (flatness is judged by the
// rule evaluators, not here).
func parseHeader(text string) (*Header, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return &Header{}, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &yaml.TypeError{Errors: []string{"frontmatter is not a mapping"}}
	}
	h := &Header{Fields: make([]HeaderField, 0, len(doc.Content)/2)}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		h.Fields = append(h.Fields, HeaderField{
			Key:   doc.Content[i].Value,
			Value: doc.Content[i+1],
		})
	}
	return h, nil
}

// newDocument builds a Document from raw file content, attempting the
// frontmatter split and header parse without ever failing.
func newDocument(path string, kind Kind, raw []byte) Document {
	doc := Document{
		Path: path,
		Kind: kind,
		Raw:  string(raw),
		Size: int64(len(raw)),
	}

	headerText, body, found := splitFrontmatter(doc.Raw)
	doc.Body = body
	if !found {
		return doc
	}

	doc.HasFrontmatter = true
	header, err := parseHeader(headerText)
	if err != nil {
		doc.HeaderParseFailed = true
		return doc
	}
	doc.Header = header
	return doc
}
