package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	indexFileName     = "index.json"
	scanCacheFileName = "scan-cache.json"
)

// Store persists the source index and scan cache as JSON files using the
// temp → rename pattern so readers never observe a partial write.
type Store struct {
	dataDir string
	tempDir string
}

// NewStore creates a store rooted at dataDir (typically <root>/.srcjump).
func NewStore(dataDir string) (*Store, error) {
	tempDir := filepath.Join(dataDir, ".tmp")

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Clean up stale temp files from an interrupted run.
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("failed to clean temp directory: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &Store{
		dataDir: dataDir,
		tempDir: tempDir,
	}, nil
}

// WriteIndex writes the source index atomically, replacing any prior snapshot.
func (s *Store) WriteIndex(idx *SourceIndex) error {
	return s.writeJSON(indexFileName, idx)
}

// ReadIndex reads the persisted source index.
// Returns (nil, nil) when no snapshot has been written yet.
func (s *Store) ReadIndex() (*SourceIndex, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx SourceIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	if idx.DetailByFilePath == nil {
		idx.DetailByFilePath = make(map[string]ComponentRecord)
	}
	if err := idx.Validate(); err != nil {
		// A stale derived map is recoverable: rebuild it from the detail map.
		idx.FilePathsByIdentifier = DeriveIdentifierPaths(idx.DetailByFilePath)
	}
	return &idx, nil
}

// IndexExists reports whether a persisted snapshot is present.
func (s *Store) IndexExists() bool {
	_, err := os.Stat(filepath.Join(s.dataDir, indexFileName))
	return err == nil
}

// WriteScanCache writes the fingerprint cache atomically.
func (s *Store) WriteScanCache(cache map[string]int64) error {
	return s.writeJSON(scanCacheFileName, cache)
}

// ReadScanCache reads the fingerprint cache.
// Returns an empty map when no cache has been written yet.
func (s *Store) ReadScanCache() (map[string]int64, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, scanCacheFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int64{}, nil
		}
		return nil, fmt.Errorf("failed to read scan cache: %w", err)
	}

	cache := map[string]int64{}
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scan cache: %w", err)
	}
	return cache, nil
}

// writeJSON marshals v and moves it into place with a rename.
func (s *Store) writeJSON(filename string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	tempPath := filepath.Join(s.tempDir, filename)
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	finalPath := filepath.Join(s.dataDir, filename)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
