// Package index defines the persisted source index data model and the
// snapshot handle used by the serving layer.
package index

import (
	"fmt"
	"sort"
	"time"
)

// ComponentRecord is one structural unit found by the extractor.
type ComponentRecord struct {
	// IdentifierName is the runtime name of the unit (e.g. a class name).
	// Not guaranteed unique across files.
	IdentifierName string `json:"identifierName"`

	// FilePath is the absolute, canonical path of the defining source file.
	FilePath string `json:"filePath"`

	// TemplateReference is the absolute path of an associated markup
	// artifact, if the unit has one.
	TemplateReference string `json:"templateReference,omitempty"`
}

// SourceIndex is the persisted snapshot of all component records.
// A SourceIndex is immutable once published; rebuilds produce a new value
// that replaces the old one wholesale.
type SourceIndex struct {
	GeneratedAt time.Time `json:"generatedAt"`

	// DetailByFilePath is the source of truth: one record per file path.
	DetailByFilePath map[string]ComponentRecord `json:"detailByFilePath"`

	// FilePathsByIdentifier maps an identifier to the file paths that
	// declare it. Derived from DetailByFilePath; treated as a cache and
	// rebuilt whenever it is absent or inconsistent.
	FilePathsByIdentifier map[string][]string `json:"filePathsByIdentifier,omitempty"`
}

// NewSourceIndex returns an empty index stamped with the given time.
func NewSourceIndex(generatedAt time.Time) *SourceIndex {
	return &SourceIndex{
		GeneratedAt:           generatedAt,
		DetailByFilePath:      make(map[string]ComponentRecord),
		FilePathsByIdentifier: make(map[string][]string),
	}
}

// DeriveIdentifierPaths rebuilds the identifier → file paths map from the
// detail map. File paths are inserted in lexicographic order so the result
// is deterministic regardless of map iteration order.
func DeriveIdentifierPaths(detail map[string]ComponentRecord) map[string][]string {
	paths := make([]string, 0, len(detail))
	for p := range detail {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	derived := make(map[string][]string)
	for _, p := range paths {
		rec := detail[p]
		if rec.IdentifierName == "" {
			continue
		}
		if !containsString(derived[rec.IdentifierName], p) {
			derived[rec.IdentifierName] = append(derived[rec.IdentifierName], p)
		}
	}
	return derived
}

// PathsFor returns the candidate file paths for an identifier, rebuilding
// the derived map lazily when it is missing or inconsistent.
func (idx *SourceIndex) PathsFor(identifier string) []string {
	if !idx.derivedConsistent() {
		idx.FilePathsByIdentifier = DeriveIdentifierPaths(idx.DetailByFilePath)
	}
	return idx.FilePathsByIdentifier[identifier]
}

// derivedConsistent reports whether the derived map can be trusted:
// it must be present and every file path it references must exist in the
// detail map (referential integrity).
func (idx *SourceIndex) derivedConsistent() bool {
	if idx.FilePathsByIdentifier == nil {
		return false
	}
	if len(idx.FilePathsByIdentifier) == 0 && len(idx.DetailByFilePath) > 0 {
		return false
	}
	for _, paths := range idx.FilePathsByIdentifier {
		for _, p := range paths {
			if _, ok := idx.DetailByFilePath[p]; !ok {
				return false
			}
		}
	}
	return true
}

// Validate checks the referential-integrity invariant of a loaded index.
func (idx *SourceIndex) Validate() error {
	for identifier, paths := range idx.FilePathsByIdentifier {
		for _, p := range paths {
			if _, ok := idx.DetailByFilePath[p]; !ok {
				return fmt.Errorf("identifier %q references unknown file path %q", identifier, p)
			}
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
