package indexer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TEST PLAN: ShouldRebuild decides rebuilds from fingerprint comparison.
//
// Dirty when: missing index, changed timestamp, added file, deleted file.
// Clean only when the candidate set is identical in membership and every
// timestamp matches AND a persisted index exists.

func TestShouldRebuild_MissingIndexForcesRebuild(t *testing.T) {
	t.Parallel()

	cache := ScanCache{"/src/a.ts": 100}

	assert.True(t, ShouldRebuild(cache, cache, false))
	assert.False(t, ShouldRebuild(cache, cache, true))
}

func TestShouldRebuild_TimestampChange(t *testing.T) {
	t.Parallel()

	previous := ScanCache{"/src/a.ts": 100, "/src/b.ts": 200}
	current := ScanCache{"/src/a.ts": 100, "/src/b.ts": 250}

	assert.True(t, ShouldRebuild(current, previous, true))
}

func TestShouldRebuild_AddedFile(t *testing.T) {
	t.Parallel()

	previous := ScanCache{"/src/a.ts": 100}
	current := ScanCache{"/src/a.ts": 100, "/src/b.ts": 200}

	assert.True(t, ShouldRebuild(current, previous, true))
}

func TestShouldRebuild_DeletedFile(t *testing.T) {
	t.Parallel()

	previous := ScanCache{"/src/a.ts": 100, "/src/b.ts": 200}
	current := ScanCache{"/src/a.ts": 100}

	assert.True(t, ShouldRebuild(current, previous, true))
}

func TestShouldRebuild_SwappedFileSameSize(t *testing.T) {
	t.Parallel()

	// Same cardinality, different membership.
	previous := ScanCache{"/src/a.ts": 100}
	current := ScanCache{"/src/b.ts": 100}

	assert.True(t, ShouldRebuild(current, previous, true))
}

func TestShouldRebuild_CleanSet(t *testing.T) {
	t.Parallel()

	previous := ScanCache{"/src/a.ts": 100, "/src/b.ts": 200}
	current := ScanCache{"/src/a.ts": 100, "/src/b.ts": 200}

	assert.False(t, ShouldRebuild(current, previous, true))
}

func TestFingerprint_StatsCandidates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "widget.ts")
	require.NoError(t, os.WriteFile(file, []byte("export class Widget {}\n"), 0644))

	mtime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(file, mtime, mtime))

	prints := Fingerprint([]string{file, filepath.Join(dir, "missing.ts")})

	// Unstatable files are skipped; they read as dirty on the next compare.
	require.Len(t, prints, 1)
	assert.Equal(t, mtime.UnixMilli(), prints[file])
}

func TestFingerprint_TouchFlipsDirty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "widget.ts")
	require.NoError(t, os.WriteFile(file, []byte("export class Widget {}\n"), 0644))

	before := Fingerprint([]string{file})
	assert.False(t, ShouldRebuild(before, before, true))

	touched := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(file, touched, touched))

	after := Fingerprint([]string{file})
	assert.True(t, ShouldRebuild(after, before, true))
}
