package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveIdentifierPaths_Deterministic(t *testing.T) {
	t.Parallel()

	detail := map[string]ComponentRecord{
		"/src/b/widget.ts": {IdentifierName: "Widget", FilePath: "/src/b/widget.ts"},
		"/src/a/widget.ts": {IdentifierName: "Widget", FilePath: "/src/a/widget.ts"},
		"/src/panel.ts":    {IdentifierName: "Panel", FilePath: "/src/panel.ts"},
	}

	derived := DeriveIdentifierPaths(detail)

	// Lexicographic insertion keeps the result stable across map iteration
	// orders.
	assert.Equal(t, []string{"/src/a/widget.ts", "/src/b/widget.ts"}, derived["Widget"])
	assert.Equal(t, []string{"/src/panel.ts"}, derived["Panel"])

	for i := 0; i < 10; i++ {
		assert.Equal(t, derived, DeriveIdentifierPaths(detail))
	}
}

func TestDeriveIdentifierPaths_SkipsEmptyIdentifiers(t *testing.T) {
	t.Parallel()

	detail := map[string]ComponentRecord{
		"/src/broken.ts": {FilePath: "/src/broken.ts"},
	}

	assert.Empty(t, DeriveIdentifierPaths(detail))
}

func TestPathsFor_RebuildsWhenDerivedMissing(t *testing.T) {
	t.Parallel()

	idx := &SourceIndex{
		GeneratedAt: time.Now(),
		DetailByFilePath: map[string]ComponentRecord{
			"/src/widget.ts": {IdentifierName: "Widget", FilePath: "/src/widget.ts"},
		},
	}

	assert.Equal(t, []string{"/src/widget.ts"}, idx.PathsFor("Widget"))
	assert.Empty(t, idx.PathsFor("Unknown"))
}

func TestPathsFor_RebuildsWhenDerivedInconsistent(t *testing.T) {
	t.Parallel()

	// The derived map references a path missing from the detail map, so it
	// must be discarded and rebuilt.
	idx := &SourceIndex{
		DetailByFilePath: map[string]ComponentRecord{
			"/src/widget.ts": {IdentifierName: "Widget", FilePath: "/src/widget.ts"},
		},
		FilePathsByIdentifier: map[string][]string{
			"Widget": {"/src/gone.ts"},
		},
	}

	assert.Equal(t, []string{"/src/widget.ts"}, idx.PathsFor("Widget"))
}

func TestValidate_ReferentialIntegrity(t *testing.T) {
	t.Parallel()

	idx := NewSourceIndex(time.Now())
	idx.DetailByFilePath["/src/widget.ts"] = ComponentRecord{
		IdentifierName: "Widget",
		FilePath:       "/src/widget.ts",
	}
	idx.FilePathsByIdentifier = DeriveIdentifierPaths(idx.DetailByFilePath)
	require.NoError(t, idx.Validate())

	idx.FilePathsByIdentifier["Widget"] = append(idx.FilePathsByIdentifier["Widget"], "/src/gone.ts")
	assert.Error(t, idx.Validate())
}
