package cli

import (
	"fmt"
	"path/filepath"

	"github.com/srcjump/srcjump/internal/config"
	"github.com/srcjump/srcjump/internal/extractor"
	"github.com/srcjump/srcjump/internal/index"
	"github.com/srcjump/srcjump/internal/indexer"
)

// dataDir returns the persistence directory under the workspace root.
func dataDir(rootDir string) string {
	return filepath.Join(rootDir, ".srcjump")
}

// buildIndexer wires the indexing stack for a workspace.
func buildIndexer(rootDir string, cfg *config.Config, progress indexer.ProgressReporter) (*indexer.Builder, error) {
	discovery, err := indexer.NewFileDiscovery(rootDir, cfg.Workspace.Include, cfg.Workspace.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to compile glob patterns: %w", err)
	}

	store, err := index.NewStore(dataDir(rootDir))
	if err != nil {
		return nil, err
	}

	return indexer.NewBuilder(rootDir, discovery, extractor.NewTypeScript(), store, progress), nil
}
