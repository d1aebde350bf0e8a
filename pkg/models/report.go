package models

import (
	"time"
)

// ComparisonReport represents the results of a comparison run
type ComparisonReport struct {
	ID        string       `json:"id"`
	Algorithm string       `json:"algorithm"`
	Folders   []FolderInfo `json:"folders"`

	// Timing
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration_ns"`

	Rows    []ComparisonRow `json:"rows"`
	Summary Summary         `json:"summary"`

	// Failures lists unreadable files skipped during digesting
	Failures []DigestFailure `json:"failures,omitempty"`

	Status RunStatus `json:"status"`
}

// Primary returns the primary folder of the report
func (r *ComparisonReport) Primary() FolderInfo {
	if len(r.Folders) == 0 {
		return FolderInfo{}
	}
	return r.Folders[0]
}

// RunStatus represents the overall result
type RunStatus string

const (
	// RunSuccess indicates the comparison completed, mismatches included
	RunSuccess RunStatus = "success"
	// RunPartial indicates the comparison completed but unreadable files were skipped
	RunPartial RunStatus = "partial"
	// RunFailed indicates the comparison could not complete
	RunFailed RunStatus = "failed"
)

// ExitCode returns the process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case RunSuccess:
		return 0
	default:
		return 1
	}
}
