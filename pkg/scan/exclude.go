package scan

import (
	"path"
	"strings"
)

// Excluder matches relative paths against exclude patterns.
// Patterns support:
//   - Simple glob patterns: *.tmp, *.log (matched against the base name)
//   - Directory patterns: .git/, node_modules/ (at any depth)
//   - Path patterns: build/*.o (matched against the full relative path)
//   - Any-depth patterns: **/cache, **/*.bak
type Excluder struct {
	patterns []string
}

// NewExcluder creates an Excluder, normalizing pattern separators
func NewExcluder(patterns []string) *Excluder {
	e := &Excluder{}
	for _, p := range patterns {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		if p != "" {
			e.patterns = append(e.patterns, p)
		}
	}
	return e
}

// Empty reports whether no pattern is configured
func (e *Excluder) Empty() bool {
	return e == nil || len(e.patterns) == 0
}

// Match reports whether a slash-separated relative path is excluded
func (e *Excluder) Match(relPath string) bool {
	if e.Empty() {
		return false
	}

	baseName := path.Base(relPath)

	for _, pattern := range e.patterns {
		if dir, ok := strings.CutSuffix(pattern, "/"); ok {
			if strings.HasPrefix(relPath, dir+"/") || strings.Contains(relPath, "/"+dir+"/") {
				return true
			}
			continue
		}

		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
			if matchGlob(baseName, suffix) || matchAnyComponent(relPath, suffix) {
				return true
			}
			if relPath == suffix || strings.HasSuffix(relPath, "/"+suffix) {
				return true
			}
			continue
		}

		if strings.Contains(pattern, "/") {
			if matchGlob(relPath, pattern) {
				return true
			}
			continue
		}

		if matchGlob(baseName, pattern) {
			return true
		}
	}

	return false
}

// matchGlob performs glob matching, treating malformed patterns as non-matching
func matchGlob(name, pattern string) bool {
	matched, _ := path.Match(pattern, name)
	return matched
}

// matchAnyComponent checks if any directory component of p matches the pattern
func matchAnyComponent(p, pattern string) bool {
	for _, part := range strings.Split(p, "/") {
		if matchGlob(part, pattern) {
			return true
		}
	}
	return false
}
