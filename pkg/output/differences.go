package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/foldercheck/pkg/models"
)

// Differences returns the rows holding at least one non-OK status
func Differences(report *models.ComparisonReport) []models.ComparisonRow {
	diffs := []models.ComparisonRow{}
	for _, row := range report.Rows {
		for _, s := range row.Statuses {
			if s != models.StatusOK {
				diffs = append(diffs, row)
				break
			}
		}
	}
	return diffs
}

// WriteDifferencesReport writes the differences report to a file
// Format can be "human" or "json"
func WriteDifferencesReport(report *models.ComparisonReport, filepath string, format string) error {
	diffs := Differences(report)
	if len(diffs) == 0 && len(report.Failures) == 0 {
		// No differences - don't create empty file
		return nil
	}

	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create differences file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeDifferencesJSON(report, diffs, file)
	default: // "human"
		err = writeDifferencesHuman(report, diffs, file)
	}
	if err != nil {
		return fmt.Errorf("failed to write differences file: %w", err)
	}
	return nil
}

// writeDifferencesHuman writes differences grouped by status, worst first
func writeDifferencesHuman(report *models.ComparisonReport, diffs []models.ComparisonRow, w io.Writer) error {
	fmt.Fprintf(w, "Differences Report\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Run: %s\n", report.ID)
	for _, folder := range report.Folders {
		fmt.Fprintf(w, "%s: %s\n", RoleLabel(folder.Role), folder.Path)
	}
	fmt.Fprintf(w, "\nTotal Differences: %d\n\n", len(diffs))

	statusOrder := []models.Status{
		models.StatusMissing,
		models.StatusMismatch,
		models.StatusMulticaseMismatch,
		models.StatusMulticaseMatch,
	}
	statusLabels := map[models.Status]string{
		models.StatusMissing:           "Missing",
		models.StatusMismatch:          "Content Differences",
		models.StatusMulticaseMismatch: "Case Variants, Not All Equal",
		models.StatusMulticaseMatch:    "Case Variants, All Equal",
	}

	for _, status := range statusOrder {
		var lines []string
		for _, row := range diffs {
			var where []string
			for i, s := range row.Statuses {
				if s == status && i < len(report.Folders) {
					where = append(where, report.Folders[i].Path)
				}
			}
			if len(where) > 0 {
				lines = append(lines, fmt.Sprintf("  %s\n    Reference: %s\n    Folders:   %s\n",
					row.Path, row.ReferenceDigest, strings.Join(where, ", ")))
			}
		}
		if len(lines) == 0 {
			continue
		}

		label := fmt.Sprintf("%s (%d files)", statusLabels[status], len(lines))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}

	if len(report.Failures) > 0 {
		label := fmt.Sprintf("Unreadable Files (%d files)", len(report.Failures))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))
		for _, fail := range report.Failures {
			fmt.Fprintf(w, "  %s\n    Folder: %s\n    Error:  %s\n\n", fail.RelativePath, fail.Folder, fail.Error)
		}
	}

	return nil
}

// writeDifferencesJSON writes differences in JSON format
func writeDifferencesJSON(report *models.ComparisonReport, diffs []models.ComparisonRow, w io.Writer) error {
	output := struct {
		Generated   string                 `json:"generated"`
		RunID       string                 `json:"run_id"`
		Folders     []models.FolderInfo    `json:"folders"`
		TotalCount  int                    `json:"total_count"`
		Differences []models.ComparisonRow `json:"differences"`
		Failures    []models.DigestFailure `json:"failures,omitempty"`
	}{
		Generated:   time.Now().Format(time.RFC3339),
		RunID:       report.ID,
		Folders:     report.Folders,
		TotalCount:  len(diffs),
		Differences: diffs,
		Failures:    report.Failures,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
