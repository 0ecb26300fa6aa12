package indexer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// dataDirName is the directory holding the persisted index and scan cache.
// It is always excluded from discovery so the tool never indexes itself.
const dataDirName = ".srcjump"

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery expands the include globs under the workspace root and
// filters out anything matching an exclude glob.
type FileDiscovery struct {
	rootDir         string
	includePatterns []compiledPattern
	excludePatterns []compiledPattern
}

// NewFileDiscovery compiles the include and exclude glob sets.
func NewFileDiscovery(rootDir string, includePatterns, excludePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{rootDir: rootDir}

	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.includePatterns = append(fd.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.excludePatterns = append(fd.excludePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// DiscoverFiles walks the workspace and returns the absolute paths of all
// candidate files, sorted for deterministic downstream processing.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(fd.rootDir, path)
		if relErr != nil {
			return relErr
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if path != fd.rootDir && fd.ShouldExclude(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.ShouldExclude(relPath) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.includePatterns) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether a workspace-relative path is a candidate file:
// matched by an include glob and not excluded.
func (fd *FileDiscovery) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if fd.ShouldExclude(relPath) {
		return false
	}
	return fd.matchesAnyPattern(relPath, fd.includePatterns)
}

// ShouldExclude checks a workspace-relative path against the exclude globs.
func (fd *FileDiscovery) ShouldExclude(relPath string) bool {
	if strings.HasPrefix(relPath, dataDirName+"/") || relPath == dataDirName {
		return true
	}

	if fd.matchesAnyPattern(relPath, fd.excludePatterns) {
		return true
	}

	// A directory like "node_modules" should match an exclude pattern
	// written as "node_modules/**".
	return fd.matchesAnyPattern(relPath+"/**", fd.excludePatterns)
}

// matchesAnyPattern checks a path against a compiled pattern set.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files have no slash, so "**/*.ts" would miss "main.ts".
	// Retry those against the pattern with the leading **/ removed.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
