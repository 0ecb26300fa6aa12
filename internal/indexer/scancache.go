package indexer

import (
	"fmt"
	"log"
	"os"
)

// ScanCache maps an absolute file path to its last-modified time in epoch
// milliseconds. It is a rebuild trigger only, never authoritative for
// content: a clean cache plus an existing index means the index is up to
// date, nothing more.
type ScanCache map[string]int64

// Fingerprint stats every candidate file and returns the current cache
// view. Files that cannot be stat'd are skipped (they will read as dirty on
// the next comparison).
func Fingerprint(candidateFiles []string) ScanCache {
	prints := make(ScanCache, len(candidateFiles))
	for _, path := range candidateFiles {
		info, err := os.Stat(path)
		if err != nil {
			log.Printf("Warning: failed to stat %s: %v", path, err)
			continue
		}
		prints[path] = info.ModTime().UnixMilli()
	}
	return prints
}

// ShouldRebuild decides whether a rebuild is needed.
//
// Dirty when:
//   - no persisted index exists (a missing index always forces a rebuild)
//   - the candidate set size differs from the cached set size
//   - any candidate is absent from the cache or has a different timestamp
//   - any cached file is no longer a candidate (deletion)
func ShouldRebuild(current ScanCache, previous ScanCache, indexExists bool) bool {
	if !indexExists {
		return true
	}
	if len(current) != len(previous) {
		return true
	}
	for path, mtime := range current {
		prev, ok := previous[path]
		if !ok || prev != mtime {
			return true
		}
	}
	for path := range previous {
		if _, ok := current[path]; !ok {
			return true
		}
	}
	return false
}

// CommitScanCache persists the current fingerprints. Callers must invoke
// this only after a successful index write, preserving the invariant
// "cache is clean implies index is up to date".
func (b *Builder) CommitScanCache(prints ScanCache) error {
	if err := b.store.WriteScanCache(prints); err != nil {
		return fmt.Errorf("failed to commit scan cache: %w", err)
	}
	return nil
}
