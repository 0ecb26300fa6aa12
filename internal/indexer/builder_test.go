package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcjump/srcjump/internal/extractor"
	"github.com/srcjump/srcjump/internal/index"
)

// fakeExtractor returns canned records per file basename and can be told to
// fail for specific files.
type fakeExtractor struct {
	records map[string][]extractor.Record
	fail    map[string]bool
}

func (f *fakeExtractor) Extract(ctx context.Context, filePath string) ([]extractor.Record, error) {
	base := filepath.Base(filePath)
	if f.fail[base] {
		return nil, fmt.Errorf("extractor broke on %s", base)
	}
	return f.records[base], nil
}

// newTestBuilder wires a builder over a temp workspace with a fake
// extractor and a fixed clock.
func newTestBuilder(t *testing.T, rootDir string, ext extractor.Extractor) *Builder {
	t.Helper()

	discovery, err := NewFileDiscovery(rootDir, []string{"**/*.ts"}, []string{"node_modules/**"})
	require.NoError(t, err)

	store, err := index.NewStore(filepath.Join(rootDir, dataDirName))
	require.NoError(t, err)

	b := NewBuilder(rootDir, discovery, ext, store, nil)
	b.SetClock(func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) })
	return b
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestBuilder_BuildsIndex(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "src", "widget.component.ts"), "class WidgetComponent {}\n")
	writeFile(t, filepath.Join(rootDir, "src", "panel.component.ts"), "class PanelComponent {}\n")
	writeFile(t, filepath.Join(rootDir, "README.md"), "not indexed\n")

	ext := &fakeExtractor{records: map[string][]extractor.Record{
		"widget.component.ts": {{IdentifierName: "WidgetComponent", TemplateReference: "./widget.component.html"}},
		"panel.component.ts":  {{IdentifierName: "PanelComponent"}},
	}}

	builder := newTestBuilder(t, rootDir, ext)

	idx, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, idx.DetailByFilePath, 2)

	widgetPath := filepath.Join(rootDir, "src", "widget.component.ts")
	rec := idx.DetailByFilePath[widgetPath]
	assert.Equal(t, "WidgetComponent", rec.IdentifierName)
	// Relative template references are resolved against the file's
	// directory.
	assert.Equal(t, filepath.Join(rootDir, "src", "widget.component.html"), rec.TemplateReference)

	assert.Equal(t, []string{widgetPath}, idx.FilePathsByIdentifier["WidgetComponent"])
	assert.NoError(t, idx.Validate())
	assert.True(t, builder.Store().IndexExists())
}

func TestBuilder_SkipsFailingFiles(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "good.ts"), "class Good {}\n")
	writeFile(t, filepath.Join(rootDir, "bad.ts"), "%%%\n")

	ext := &fakeExtractor{
		records: map[string][]extractor.Record{
			"good.ts": {{IdentifierName: "Good"}},
		},
		fail: map[string]bool{"bad.ts": true},
	}

	idx, err := newTestBuilder(t, rootDir, ext).Build(context.Background())
	require.NoError(t, err)

	// One bad file never aborts the scan.
	require.Len(t, idx.DetailByFilePath, 1)
	assert.Contains(t, idx.FilePathsByIdentifier, "Good")
}

func TestBuilder_FailsWhenEveryFileFails(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "bad.ts"), "%%%\n")

	ext := &fakeExtractor{fail: map[string]bool{"bad.ts": true}}

	_, err := newTestBuilder(t, rootDir, ext).Build(context.Background())
	assert.Error(t, err)
}

func TestBuilder_IdempotentSnapshot(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "widget.ts"), "class Widget {}\n")

	ext := &fakeExtractor{records: map[string][]extractor.Record{
		"widget.ts": {{IdentifierName: "Widget"}},
	}}
	builder := newTestBuilder(t, rootDir, ext)

	indexPath := filepath.Join(rootDir, dataDirName, "index.json")

	_, err := builder.Build(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(indexPath)
	require.NoError(t, err)

	_, err = builder.Build(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(indexPath)
	require.NoError(t, err)

	// Unchanged inputs and a fixed clock yield byte-identical snapshots.
	assert.Equal(t, first, second)
}

func TestBuilder_RefreshShortCircuitsWhenClean(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "widget.ts"), "class Widget {}\n")

	ext := &fakeExtractor{records: map[string][]extractor.Record{
		"widget.ts": {{IdentifierName: "Widget"}},
	}}
	builder := newTestBuilder(t, rootDir, ext)

	_, rebuilt, err := builder.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, rebuilt)

	idx, rebuilt, err := builder.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, rebuilt)
	require.NotNil(t, idx)
	assert.Len(t, idx.DetailByFilePath, 1)
}

func TestBuilder_RefreshRebuildsAfterTouch(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	file := filepath.Join(rootDir, "widget.ts")
	writeFile(t, file, "class Widget {}\n")

	ext := &fakeExtractor{records: map[string][]extractor.Record{
		"widget.ts": {{IdentifierName: "Widget"}},
	}}
	builder := newTestBuilder(t, rootDir, ext)

	_, rebuilt, err := builder.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, rebuilt)

	indexPath := filepath.Join(rootDir, dataDirName, "index.json")
	before, err := os.ReadFile(indexPath)
	require.NoError(t, err)

	touched := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(file, touched, touched))

	_, rebuilt, err = builder.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, rebuilt)

	// Same content rebuilt from the same inputs: identical snapshot.
	after, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
