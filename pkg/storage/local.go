package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sdejongh/foldercheck/internal/platform"
	"github.com/sdejongh/foldercheck/pkg/models"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend.
// It fails with *models.NotFoundError when rootPath is missing or not a directory.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(platform.NormalizePath(rootPath))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &models.NotFoundError{Path: rootPath, Reason: "does not exist"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, &models.NotFoundError{Path: rootPath, Reason: "not a directory"}
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// Walk visits every regular file below the root
func (l *Local) Walk(ctx context.Context, fn WalkFunc) error {
	err := filepath.WalkDir(l.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Only regular files are entries; symlinks are not followed
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := platform.RelSlash(l.rootPath, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		return fn(FileInfo{
			Path:         p,
			RelativePath: relPath,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})
	})

	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", l.rootPath, err)
	}

	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
