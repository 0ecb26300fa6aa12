// Package extractor turns a source file into zero or more structural
// records. Implementations are pure per-file functions: the indexer treats
// a failure on one file as a skip, never as a scan abort.
package extractor

import "context"

// Record is one structural unit found in a file.
type Record struct {
	// IdentifierName is the declared name of the unit (e.g. a class name).
	IdentifierName string

	// TemplateReference is the associated markup artifact as written in
	// the source (possibly relative to the file's directory). Empty when
	// the unit has no template. The index builder resolves it to an
	// absolute path.
	TemplateReference string
}

// Extractor extracts structural records from a single source file.
type Extractor interface {
	Extract(ctx context.Context, filePath string) ([]Record, error)
}
