// Package engine runs a folder comparison from indexing to the final report.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/foldercheck/pkg/checksum"
	"github.com/sdejongh/foldercheck/pkg/digest"
	"github.com/sdejongh/foldercheck/pkg/logging"
	"github.com/sdejongh/foldercheck/pkg/models"
	"github.com/sdejongh/foldercheck/pkg/ratelimit"
	"github.com/sdejongh/foldercheck/pkg/reconcile"
	"github.com/sdejongh/foldercheck/pkg/scan"
	"github.com/sdejongh/foldercheck/pkg/storage"
)

// Engine orchestrates the compare operation
type Engine struct {
	operation *models.CompareOperation
	indexer   *scan.Indexer
	collector *checksum.Collector
	logger    logging.Logger
}

// NewEngine creates a compare engine for operation.
// A nil logger or observer disables logging or progress.
func NewEngine(operation *models.CompareOperation, logger logging.Logger, observer models.Observer) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if operation.ID == "" {
		operation.ID = uuid.New().String()
	}
	logger = logger.WithFields(logging.Fields{"run_id": operation.ID})

	digester := digest.NewEngine(operation.BufferSize)
	if limiter := ratelimit.NewLimiter(operation.BandwidthLimit); limiter != nil {
		// One limiter for every worker caps the aggregate throughput
		digester.SetReaderWrapper(func(ctx context.Context, r io.Reader) io.Reader {
			return ratelimit.NewReader(ctx, r, limiter)
		})
	}

	return &Engine{
		operation: operation,
		indexer:   scan.NewIndexer(operation.ExcludePatterns, logger),
		collector: checksum.NewCollector(digester, operation.MaxWorkers, operation.SkipUnreadable, logger, observer),
		logger:    logger,
	}
}

// Run validates every folder, indexes them, digests the primary's paths in
// each folder and reconciles the results.
// An invalid folder fails with *models.NotFoundError before any file is read.
func (e *Engine) Run(ctx context.Context) (*models.ComparisonReport, error) {
	if err := e.operation.Validate(); err != nil {
		return nil, err
	}

	report := &models.ComparisonReport{
		ID:        e.operation.ID,
		Algorithm: digest.Name,
		StartTime: time.Now(),
		Status:    models.RunFailed,
	}

	backends, err := openBackends(e.operation.Folders)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, b := range backends {
			b.Close()
		}
	}()

	e.logger.Info(ctx, "Comparison started", logging.Fields{
		"folders":         len(backends),
		"primary":         e.operation.Folders[0],
		"max_workers":     e.operation.MaxWorkers,
		"skip_unreadable": e.operation.SkipUnreadable,
	})

	indexes := make([]*models.FolderIndex, len(backends))
	report.Folders = make([]models.FolderInfo, len(backends))
	for i, backend := range backends {
		idx, err := e.indexer.Index(ctx, backend)
		if err != nil {
			return e.fail(ctx, report, fmt.Errorf("failed to index %s: %w", e.operation.Folders[i], err))
		}
		indexes[i] = idx
		report.Folders[i] = models.FolderInfo{
			Index:        i,
			Path:         e.operation.Folders[i],
			Role:         models.RoleForIndex(i),
			FilesIndexed: idx.FileCount(),
			BytesIndexed: idx.TotalBytes(),
		}
	}

	// Only the primary's paths are ever looked up in the other folders
	keys := indexes[0].Keys()

	sums := make([]*models.FolderChecksums, len(indexes))
	for i, idx := range indexes {
		fc, err := e.collector.Collect(ctx, report.Folders[i], idx, keys)
		if err != nil {
			return e.fail(ctx, report, fmt.Errorf("failed to checksum %s: %w", e.operation.Folders[i], err))
		}
		sums[i] = fc
		report.Failures = append(report.Failures, fc.Failures...)
	}

	result := reconcile.Reconcile(sums[0], sums, indexes[0])
	report.Rows = result.Rows
	report.Summary = result.Summary

	report.Status = models.RunSuccess
	if len(report.Failures) > 0 {
		report.Status = models.RunPartial
	}
	e.finish(report)

	e.logger.Info(ctx, "Comparison completed", logging.Fields{
		"status":             string(report.Status),
		"files":              report.Summary.Files,
		"ok":                 report.Summary.OK,
		"mismatch":           report.Summary.Mismatch,
		"missing":            report.Summary.Missing,
		"multicase_match":    report.Summary.MulticaseMatch,
		"multicase_mismatch": report.Summary.MulticaseMismatch,
		"unreadable":         len(report.Failures),
		"duration":           report.Duration.String(),
	})

	return report, nil
}

// openBackends opens every folder, stopping at the first invalid one
func openBackends(folders []string) ([]storage.Backend, error) {
	backends := make([]storage.Backend, 0, len(folders))
	for _, path := range folders {
		local, err := storage.NewLocal(path)
		if err != nil {
			for _, b := range backends {
				b.Close()
			}
			return nil, err
		}
		backends = append(backends, local)
	}
	return backends, nil
}

func (e *Engine) finish(report *models.ComparisonReport) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
}

// fail marks the report failed and returns it along with err
func (e *Engine) fail(ctx context.Context, report *models.ComparisonReport, err error) (*models.ComparisonReport, error) {
	report.Status = models.RunFailed
	e.finish(report)
	e.logger.Error(ctx, "Comparison failed", err, logging.Fields{
		"duration": report.Duration.String(),
	})
	return report, err
}
