package storage

import (
	"context"
	"time"
)

// FileInfo represents metadata about a regular file found while walking
type FileInfo struct {
	// Path is the absolute filesystem path
	Path string
	// RelativePath is the path relative to the backend root, forward slashes
	RelativePath string
	Size         int64
	ModTime      time.Time
}

// WalkFunc is called for every regular file below the backend root.
// Returning an error stops the walk.
type WalkFunc func(info FileInfo) error

// Backend defines the interface for folder access
// The local filesystem is the only implementation
type Backend interface {
	// Root returns the absolute root path of the backend
	Root() string

	// Walk visits every regular file recursively in lexical order.
	// Directories, symlinks and other special files are not reported.
	Walk(ctx context.Context, fn WalkFunc) error

	// Close releases any resources held by the backend
	Close() error
}
