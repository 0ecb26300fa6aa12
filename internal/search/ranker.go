// Package search ranks the lines of a target file against weighted textual
// clues. It is the fallback used when a resolved record has a template
// reference but no statically known line.
package search

import (
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/maypok86/otter"

	"github.com/srcjump/srcjump/internal/config"
)

const (
	cacheCapacity = 256
	cacheTTL      = 30 * time.Second
)

// fileLines is the cached split content of a ranked file.
type fileLines struct {
	lines       []string
	mtimeMillis int64
}

// Ranker scores each line of a file against an ordered clue list. Earlier
// clues carry more weight: clue i of n has weight max(1, n-i).
type Ranker struct {
	scoring config.ScoringConfig
	cache   otter.Cache[string, fileLines]
}

// NewRanker creates a ranker with the given scoring multipliers.
func NewRanker(scoring config.ScoringConfig) (*Ranker, error) {
	cache, err := otter.MustBuilder[string, fileLines](cacheCapacity).
		WithTTL(cacheTTL).
		Build()
	if err != nil {
		return nil, err
	}
	return &Ranker{
		scoring: scoring,
		cache:   cache,
	}, nil
}

// Close releases the line cache.
func (r *Ranker) Close() {
	r.cache.Close()
}

// FindBestLine returns the 1-based line with the highest accumulated clue
// score. Lines scoring zero everywhere, empty clue lists, and unreadable
// files all fall back to line 1.
func (r *Ranker) FindBestLine(filePath string, clues []string) int {
	lines, ok := r.readLines(filePath)
	if !ok {
		return 1
	}

	clueCount := len(clues)
	scores := make([]float64, len(lines))

	for i, clue := range clues {
		if clue == "" {
			continue
		}

		weight := float64(clueCount - i)
		if weight < 1 {
			weight = 1
		}

		lowerClue := strings.ToLower(clue)
		// Clues come from live markup and may contain regex metacharacters;
		// QuoteMeta keeps the word-boundary check literal.
		wordPattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(clue) + `\b`)
		if err != nil {
			wordPattern = nil
		}

		for lineNo, line := range lines {
			lowerLine := strings.ToLower(line)
			if !strings.Contains(lowerLine, lowerClue) {
				continue
			}

			scores[lineNo] += weight * r.scoring.Substring

			if wordPattern != nil && wordPattern.MatchString(line) {
				scores[lineNo] += weight * r.scoring.WholeWord
			}

			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), lowerClue) {
				scores[lineNo] += weight * r.scoring.LinePrefix
			}
		}
	}

	bestLine := 1
	bestScore := 0.0
	for lineNo, score := range scores {
		if score > bestScore {
			bestScore = score
			bestLine = lineNo + 1
		}
	}
	return bestLine
}

// readLines returns the file's lines, served from the cache when the file
// has not been modified since it was cached. A read failure degrades to
// no-lines rather than propagating.
func (r *Ranker) readLines(filePath string) ([]string, bool) {
	info, err := os.Stat(filePath)
	if err != nil {
		log.Printf("Warning: cannot stat %s for line ranking: %v", filePath, err)
		return nil, false
	}
	mtime := info.ModTime().UnixMilli()

	if cached, ok := r.cache.Get(filePath); ok && cached.mtimeMillis == mtime {
		return cached.lines, true
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Warning: cannot read %s for line ranking: %v", filePath, err)
		return nil, false
	}

	lines := strings.Split(string(data), "\n")
	r.cache.Set(filePath, fileLines{lines: lines, mtimeMillis: mtime})
	return lines, true
}
