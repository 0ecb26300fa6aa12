package indexer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiscovery(t *testing.T, rootDir string) *FileDiscovery {
	t.Helper()
	fd, err := NewFileDiscovery(rootDir,
		[]string{"**/*.ts"},
		[]string{"node_modules/**", "**/*.spec.ts"})
	require.NoError(t, err)
	return fd
}

func TestDiscoverFiles_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "main.ts"), "")
	writeFile(t, filepath.Join(rootDir, "src", "widget.ts"), "")
	writeFile(t, filepath.Join(rootDir, "src", "widget.spec.ts"), "")
	writeFile(t, filepath.Join(rootDir, "src", "styles.css"), "")
	writeFile(t, filepath.Join(rootDir, "node_modules", "dep", "index.ts"), "")
	writeFile(t, filepath.Join(rootDir, dataDirName, "index.json"), "{}")

	files, err := newTestDiscovery(t, rootDir).DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(rootDir, "main.ts"),
		filepath.Join(rootDir, "src", "widget.ts"),
	}, files)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	fd := newTestDiscovery(t, t.TempDir())

	assert.True(t, fd.Matches("src/widget.ts"))
	// Root-level files have no slash but still match "**/*.ts".
	assert.True(t, fd.Matches("main.ts"))
	assert.False(t, fd.Matches("src/widget.spec.ts"))
	assert.False(t, fd.Matches("node_modules/dep/index.ts"))
	assert.False(t, fd.Matches("src/styles.css"))
	assert.False(t, fd.Matches(dataDirName+"/index.json"))
}

func TestShouldExclude_DirectoryForms(t *testing.T) {
	t.Parallel()

	fd := newTestDiscovery(t, t.TempDir())

	// The bare directory name matches an exclude written as "dir/**".
	assert.True(t, fd.ShouldExclude("node_modules"))
	assert.True(t, fd.ShouldExclude("node_modules/dep"))
	assert.True(t, fd.ShouldExclude(dataDirName))
	assert.False(t, fd.ShouldExclude("src"))
}

func TestNewFileDiscovery_RejectsBadPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)
}
