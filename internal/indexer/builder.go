// Package indexer builds and maintains the source index: glob discovery,
// per-file structural extraction, fingerprint-based change detection, and
// the rebuild coordination used in watch mode.
package indexer

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/srcjump/srcjump/internal/extractor"
	"github.com/srcjump/srcjump/internal/index"
)

// ProgressReporter receives scan progress callbacks. The CLI renders these
// as a progress bar; the watcher uses a silent implementation.
type ProgressReporter interface {
	OnScanStart(totalFiles int)
	OnFileScanned(filePath string)
	OnScanComplete(records int, elapsed time.Duration)
}

// noopProgress discards all progress callbacks.
type noopProgress struct{}

func (noopProgress) OnScanStart(int)                   {}
func (noopProgress) OnFileScanned(string)              {}
func (noopProgress) OnScanComplete(int, time.Duration) {}

// NoopProgress returns a reporter that discards everything.
func NoopProgress() ProgressReporter { return noopProgress{} }

// Builder assembles a SourceIndex from the workspace and persists it.
type Builder struct {
	rootDir   string
	discovery *FileDiscovery
	extractor extractor.Extractor
	store     *index.Store
	progress  ProgressReporter
	clock     func() time.Time
}

// NewBuilder creates an index builder.
func NewBuilder(rootDir string, discovery *FileDiscovery, ext extractor.Extractor, store *index.Store, progress ProgressReporter) *Builder {
	if progress == nil {
		progress = NoopProgress()
	}
	return &Builder{
		rootDir:   rootDir,
		discovery: discovery,
		extractor: ext,
		store:     store,
		progress:  progress,
		clock:     time.Now,
	}
}

// Discovery exposes the builder's file discovery for event filtering.
func (b *Builder) Discovery() *FileDiscovery { return b.discovery }

// Store exposes the underlying persistence layer.
func (b *Builder) Store() *index.Store { return b.store }

// SetClock overrides the timestamp source. Used by tests that compare
// snapshots byte for byte.
func (b *Builder) SetClock(clock func() time.Time) { b.clock = clock }

// Build discovers candidate files, extracts records, and persists the
// resulting index, replacing any prior snapshot. Safe to invoke repeatedly:
// unchanged inputs produce an identical snapshot.
func (b *Builder) Build(ctx context.Context) (*index.SourceIndex, error) {
	files, err := b.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	return b.BuildFrom(ctx, files)
}

// BuildFrom builds and persists the index for a known candidate file set.
// A file that fails extraction is skipped and the scan continues; the build
// fails only when every file failed.
func (b *Builder) BuildFrom(ctx context.Context, candidateFiles []string) (*index.SourceIndex, error) {
	start := b.clock()
	b.progress.OnScanStart(len(candidateFiles))

	idx := index.NewSourceIndex(start.UTC().Truncate(time.Millisecond))
	failed := 0

	for _, filePath := range candidateFiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			log.Printf("Warning: failed to resolve %s: %v", filePath, err)
			failed++
			continue
		}

		records, err := b.extractor.Extract(ctx, absPath)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("Warning: extraction failed for %s, skipping: %v", absPath, err)
			failed++
			b.progress.OnFileScanned(absPath)
			continue
		}

		b.addRecords(idx, absPath, records)
		b.progress.OnFileScanned(absPath)
	}

	if failed > 0 && failed == len(candidateFiles) {
		return nil, fmt.Errorf("extraction failed for all %d candidate files", failed)
	}

	idx.FilePathsByIdentifier = index.DeriveIdentifierPaths(idx.DetailByFilePath)

	if err := b.store.WriteIndex(idx); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}

	b.progress.OnScanComplete(len(idx.DetailByFilePath), time.Since(start))
	return idx, nil
}

// addRecords folds one file's extraction output into the index. The detail
// map keeps the first record per file (the file's primary unit); template
// references are resolved against the file's directory.
func (b *Builder) addRecords(idx *index.SourceIndex, absPath string, records []extractor.Record) {
	for i, rec := range records {
		if rec.IdentifierName == "" {
			continue
		}

		templateRef := ""
		if rec.TemplateReference != "" {
			templateRef = rec.TemplateReference
			if !filepath.IsAbs(templateRef) {
				templateRef = filepath.Join(filepath.Dir(absPath), templateRef)
			}
		}

		if i == 0 {
			idx.DetailByFilePath[absPath] = index.ComponentRecord{
				IdentifierName:    rec.IdentifierName,
				FilePath:          absPath,
				TemplateReference: templateRef,
			}
		}
	}
}

// Refresh runs the full change-detection pipeline: fingerprint the current
// candidate set, compare against the committed cache, and rebuild only when
// dirty. Returns the fresh index and whether a rebuild ran; when the cache
// is clean the persisted snapshot is returned untouched.
func (b *Builder) Refresh(ctx context.Context) (*index.SourceIndex, bool, error) {
	files, err := b.discovery.DiscoverFiles()
	if err != nil {
		return nil, false, fmt.Errorf("failed to discover files: %w", err)
	}

	prints := Fingerprint(files)

	previous, err := b.store.ReadScanCache()
	if err != nil {
		return nil, false, err
	}

	if !ShouldRebuild(prints, previous, b.store.IndexExists()) {
		idx, err := b.store.ReadIndex()
		if err != nil {
			return nil, false, err
		}
		return idx, false, nil
	}

	idx, err := b.BuildFrom(ctx, files)
	if err != nil {
		return nil, false, err
	}

	// Commit only after the index write succeeded.
	if err := b.CommitScanCache(prints); err != nil {
		return nil, false, err
	}

	return idx, true, nil
}
