package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// shortPrefixLen is the number of leading characters kept by ShortenPath
const shortPrefixLen = 10

// NormalizePath normalizes a path for the current platform
func NormalizePath(path string) string {
	normalized := filepath.Clean(path)

	// On Windows, ensure UNC paths are preserved
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// IsUNCPath checks if a path is a UNC path (Windows network share)
func IsUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}

// RelSlash returns target relative to base using forward slashes, so that the
// same logical path compares equal whatever platform scanned it
func RelSlash(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// FoldKey returns the case-insensitive key of a slash-separated relative path
func FoldKey(relPath string) string {
	return strings.ToLower(relPath)
}

// ShortenPath keeps the first characters of a long folder path and its base
// name, joined by "...", e.g. "/mnt/backu...photos"
func ShortenPath(path string) string {
	base := filepath.Base(path)
	if len(path) <= shortPrefixLen+len(base)+3 {
		return path
	}
	return path[:shortPrefixLen] + "..." + base
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(path, char) && !IsUNCPath(path) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
