package scan

import (
	"context"

	"github.com/sdejongh/foldercheck/internal/platform"
	"github.com/sdejongh/foldercheck/pkg/logging"
	"github.com/sdejongh/foldercheck/pkg/models"
	"github.com/sdejongh/foldercheck/pkg/storage"
)

// Indexer builds case-insensitive file indexes of folders
type Indexer struct {
	excluder *Excluder
	logger   logging.Logger
}

// NewIndexer creates an indexer skipping files that match excludePatterns
func NewIndexer(excludePatterns []string, logger logging.Logger) *Indexer {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Indexer{
		excluder: NewExcluder(excludePatterns),
		logger:   logger,
	}
}

// Index walks the backend recursively and groups its regular files by
// lower-cased relative path. Case variants share a bucket in discovery order.
func (ix *Indexer) Index(ctx context.Context, backend storage.Backend) (*models.FolderIndex, error) {
	idx := models.NewFolderIndex(backend.Root())
	excluded := 0

	err := backend.Walk(ctx, func(info storage.FileInfo) error {
		if ix.excluder.Match(info.RelativePath) {
			excluded++
			ix.logger.Debug(ctx, "Excluded file", logging.Fields{
				"folder": backend.Root(),
				"path":   info.RelativePath,
			})
			return nil
		}

		idx.Add(platform.FoldKey(info.RelativePath), models.FileEntry{
			RelativePath: info.RelativePath,
			AbsolutePath: info.Path,
			Size:         info.Size,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	ix.logger.Info(ctx, "Indexed folder", logging.Fields{
		"folder":   backend.Root(),
		"files":    idx.FileCount(),
		"paths":    idx.Len(),
		"excluded": excluded,
	})

	return idx, nil
}

// IndexPath opens root as a local backend and indexes it.
// A missing or non-directory root fails with *models.NotFoundError.
func (ix *Indexer) IndexPath(ctx context.Context, root string) (*models.FolderIndex, error) {
	backend, err := storage.NewLocal(root)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	return ix.Index(ctx, backend)
}
