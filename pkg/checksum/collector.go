package checksum

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/foldercheck/pkg/digest"
	"github.com/sdejongh/foldercheck/pkg/logging"
	"github.com/sdejongh/foldercheck/pkg/models"
)

// Collector computes the digests of every case variant of a set of keys.
// Files are digested by a bounded pool of workers. Results land in
// pre-allocated slots, so the output does not depend on completion order.
type Collector struct {
	engine         *digest.Engine
	workers        int
	skipUnreadable bool
	logger         logging.Logger
	observer       models.Observer
}

// NewCollector creates a collector running up to workers digests in parallel.
// When skipUnreadable is set, files failing with *models.IOError are logged,
// recorded as failures and left out of the result instead of aborting.
func NewCollector(engine *digest.Engine, workers int, skipUnreadable bool, logger logging.Logger, observer models.Observer) *Collector {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if observer == nil {
		observer = models.NopObserver{}
	}
	return &Collector{
		engine:         engine,
		workers:        workers,
		skipUnreadable: skipUnreadable,
		logger:         logger,
		observer:       observer,
	}
}

// job is one file waiting to be digested
type job struct {
	bucket int
	slot   int
	entry  models.FileEntry
}

// Collect digests the entries stored under keys in index.
// Keys absent from index are silently omitted from the result.
func (c *Collector) Collect(ctx context.Context, folder models.FolderInfo, index *models.FolderIndex, keys []string) (*models.FolderChecksums, error) {
	results := make([][]models.ChecksumEntry, len(keys))
	skipped := make([][]bool, len(keys))

	var jobs []job
	for b, key := range keys {
		entries, ok := index.Entries(key)
		if !ok {
			continue
		}
		results[b] = make([]models.ChecksumEntry, len(entries))
		skipped[b] = make([]bool, len(entries))
		for s, entry := range entries {
			jobs = append(jobs, job{bucket: b, slot: s, entry: entry})
		}
	}

	c.observer.FolderStarted(folder, len(jobs))
	defer c.observer.FolderFinished(folder)

	var mu sync.Mutex
	var failures []models.DigestFailure

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			sum, err := c.engine.File(gctx, j.entry.AbsolutePath)
			c.observer.FileChecked(folder, j.entry.RelativePath, j.entry.Size, err)
			if err == nil {
				results[j.bucket][j.slot] = models.ChecksumEntry{
					CaseVariantPath: j.entry.RelativePath,
					Digest:          sum,
				}
				return nil
			}

			var ioErr *models.IOError
			if !c.skipUnreadable || !errors.As(err, &ioErr) {
				return err
			}

			c.logger.Warn(gctx, "Skipped unreadable file", logging.Fields{
				"folder": folder.Path,
				"path":   j.entry.RelativePath,
				"error":  err.Error(),
			})
			skipped[j.bucket][j.slot] = true
			mu.Lock()
			failures = append(failures, models.DigestFailure{
				Folder:       folder.Path,
				RelativePath: j.entry.RelativePath,
				Error:        err.Error(),
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sums := models.NewFolderChecksums(folder.Path)
	for b, key := range keys {
		if results[b] == nil {
			continue
		}
		kept := results[b][:0]
		for s, entry := range results[b] {
			if !skipped[b][s] {
				kept = append(kept, entry)
			}
		}
		sums.Set(key, kept)
	}
	sums.Failures = sortFailures(keys, index, failures)

	c.logger.Debug(ctx, "Collected checksums", logging.Fields{
		"folder":  folder.Path,
		"role":    string(folder.Role),
		"files":   len(jobs),
		"keys":    sums.Len(),
		"skipped": len(failures),
	})

	return sums, nil
}

// sortFailures orders failures by key position then discovery order, so the
// report is stable whatever order the workers finished in
func sortFailures(keys []string, index *models.FolderIndex, failures []models.DigestFailure) []models.DigestFailure {
	if len(failures) == 0 {
		return nil
	}
	byPath := make(map[string]models.DigestFailure, len(failures))
	for _, f := range failures {
		byPath[f.RelativePath] = f
	}
	ordered := make([]models.DigestFailure, 0, len(failures))
	for _, key := range keys {
		entries, _ := index.Entries(key)
		for _, e := range entries {
			if f, ok := byPath[e.RelativePath]; ok {
				ordered = append(ordered, f)
			}
		}
	}
	return ordered
}
