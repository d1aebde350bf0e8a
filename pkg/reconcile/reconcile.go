// Package reconcile classifies every path of the primary folder against each
// folder's checksums.
package reconcile

import (
	"github.com/sdejongh/foldercheck/pkg/models"
)

// Result holds the status matrix and its summary
type Result struct {
	Rows    []models.ComparisonRow
	Summary models.Summary
}

// Reconcile builds one row per key of primaryIndex, in discovery order, with a
// status per entry of folders. folders lists every folder's checksums in
// argument order and must start with primarySums.
//
// Reconcile does no I/O. A nil entry in folders or a primarySums that is not
// folders[0] is a programming error and panics.
func Reconcile(primarySums *models.FolderChecksums, folders []*models.FolderChecksums, primaryIndex *models.FolderIndex) *Result {
	if len(folders) == 0 || folders[0] != primarySums {
		panic("reconcile: primary checksums must be the first folder")
	}
	for i, f := range folders {
		if f == nil {
			panic("reconcile: no checksums for folder " + string(models.RoleForIndex(i)))
		}
	}

	keys := primaryIndex.Keys()
	rows := make([]models.ComparisonRow, 0, len(keys))

	for _, key := range keys {
		row := models.ComparisonRow{
			Key:             key,
			Path:            displayPath(primaryIndex, key),
			ReferenceDigest: referenceDigest(primarySums, key),
			Statuses:        make([]models.Status, len(folders)),
		}
		for i, folder := range folders {
			row.Statuses[i] = Classify(folder, key, row.ReferenceDigest)
		}
		rows = append(rows, row)
	}

	return &Result{
		Rows:    rows,
		Summary: models.Summarize(rows),
	}
}

// Classify returns the status of key in one folder given the reference digest.
// Several case variants always yield a MULTICASE status, whatever the reference.
func Classify(folder *models.FolderChecksums, key, reference string) models.Status {
	variants, ok := folder.Get(key)
	if !ok || len(variants) == 0 {
		return models.StatusMissing
	}

	if len(variants) == 1 {
		if variants[0].Digest == reference {
			return models.StatusOK
		}
		return models.StatusMismatch
	}

	first := variants[0].Digest
	for _, v := range variants[1:] {
		if v.Digest != first {
			return models.StatusMulticaseMismatch
		}
	}
	return models.StatusMulticaseMatch
}

// referenceDigest is the digest of the first primary variant, empty when the
// primary's copies could not be read
func referenceDigest(primary *models.FolderChecksums, key string) string {
	variants, ok := primary.Get(key)
	if !ok || len(variants) == 0 {
		return ""
	}
	return variants[0].Digest
}

func displayPath(index *models.FolderIndex, key string) string {
	entries, ok := index.Entries(key)
	if !ok || len(entries) == 0 {
		return key
	}
	return entries[0].RelativePath
}
