// Package resolver maps a runtime identifier plus the current navigation
// context to the single most relevant component record in the index.
package resolver

import (
	"strings"

	"github.com/srcjump/srcjump/internal/config"
	"github.com/srcjump/srcjump/internal/index"
)

// Resolver scores candidate file paths against a navigation path when an
// identifier is declared in more than one file.
type Resolver struct {
	scoring config.ScoringConfig
}

// New creates a resolver with the given scoring constants.
func New(scoring config.ScoringConfig) *Resolver {
	return &Resolver{scoring: scoring}
}

// Resolve returns the best record for the identifier, or ok=false when the
// identifier is unknown under every candidate generation strategy.
//
// Candidate identifiers are tried in fixed priority order: the identifier
// as given, then with the leading run of underscores stripped (minified
// runtime class names). The first identifier yielding candidates wins;
// candidate sets are never merged.
func (r *Resolver) Resolve(idx *index.SourceIndex, identifier, navigationPath string) (index.ComponentRecord, bool) {
	if idx == nil || identifier == "" {
		return index.ComponentRecord{}, false
	}

	var paths []string
	for _, candidate := range candidateIdentifiers(identifier) {
		if paths = idx.PathsFor(candidate); len(paths) > 0 {
			break
		}
	}
	if len(paths) == 0 {
		return index.ComponentRecord{}, false
	}

	best := paths[0]
	if len(paths) > 1 {
		best = r.selectByRelevance(paths, navigationPath)
	}

	rec, ok := idx.DetailByFilePath[best]
	return rec, ok
}

// candidateIdentifiers generates the lookup attempts for a runtime name.
func candidateIdentifiers(identifier string) []string {
	candidates := []string{identifier}
	if stripped := strings.TrimLeft(identifier, "_"); stripped != "" && stripped != identifier {
		candidates = append(candidates, stripped)
	}
	return candidates
}

// selectByRelevance picks the candidate with the strictly highest relevance
// score. Ties keep the first candidate in stored order, so repeated calls
// are deterministic.
func (r *Resolver) selectByRelevance(paths []string, navigationPath string) string {
	best := paths[0]
	bestScore := r.Score(best, navigationPath)

	for _, p := range paths[1:] {
		if score := r.Score(p, navigationPath); score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best
}

// Score computes the additive relevance of a file path against a navigation
// path:
//   - SegmentMatch for every navigation segment appearing verbatim as a
//     whole segment of the file path
//   - AdjacentPair for every adjacent navigation segment pair whose joined
//     "a/b" form occurs as a substring of the file path
//   - LastSegment when the final navigation segment occurs anywhere in the
//     file path, case-insensitively
func (r *Resolver) Score(filePath, navigationPath string) int {
	segments := splitSegments(navigationPath)
	if len(segments) == 0 {
		return 0
	}

	normalized := strings.ReplaceAll(filePath, "\\", "/")
	pathSegments := splitSegments(normalized)

	score := 0

	for _, seg := range segments {
		if containsSegment(pathSegments, seg) {
			score += r.scoring.SegmentMatch
		}
	}

	for i := 0; i+1 < len(segments); i++ {
		if strings.Contains(normalized, segments[i]+"/"+segments[i+1]) {
			score += r.scoring.AdjacentPair
		}
	}

	last := segments[len(segments)-1]
	if strings.Contains(strings.ToLower(normalized), strings.ToLower(last)) {
		score += r.scoring.LastSegment
	}

	return score
}

// splitSegments splits a path on "/" and discards empty segments.
func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func containsSegment(segments []string, want string) bool {
	for _, s := range segments {
		if s == want {
			return true
		}
	}
	return false
}
