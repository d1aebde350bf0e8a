package models

// Status is the classification of one path in one folder
type Status string

const (
	// StatusOK indicates a single copy whose digest equals the reference
	StatusOK Status = "OK"
	// StatusMismatch indicates a single copy whose digest differs from the reference
	StatusMismatch Status = "MISMATCH"
	// StatusMissing indicates the folder has no file under the path
	StatusMissing Status = "MISSING"
	// StatusMulticaseMatch indicates several case variants with identical digests
	StatusMulticaseMatch Status = "MULTICASE_MATCH"
	// StatusMulticaseMismatch indicates several case variants whose digests differ
	StatusMulticaseMismatch Status = "MULTICASE_MISMATCH"
)

// IsMulticase reports whether the status stems from case-variant duplicates
func (s Status) IsMulticase() bool {
	return s == StatusMulticaseMatch || s == StatusMulticaseMismatch
}

// ComparisonRow is the cross-folder result for one case-insensitive path of
// the primary folder
type ComparisonRow struct {
	// Key is the lower-cased relative path
	Key string `json:"key"`
	// Path is the display path, the first variant found in the primary folder
	Path string `json:"path"`
	// ReferenceDigest is the primary folder's digest used for comparison
	ReferenceDigest string `json:"reference_digest"`
	// Statuses holds one status per folder, primary first
	Statuses []Status `json:"statuses"`
}

// Summary aggregates status counts across all rows and folders
type Summary struct {
	Files             int `json:"files"`
	OK                int `json:"ok"`
	MulticaseMatch    int `json:"multicase_match"`
	MulticaseMismatch int `json:"multicase_mismatch"`
	Mismatch          int `json:"mismatch"`
	Missing           int `json:"missing"`
}

// Summarize derives the summary from rows
func Summarize(rows []ComparisonRow) Summary {
	s := Summary{Files: len(rows)}
	for _, row := range rows {
		for _, status := range row.Statuses {
			s.add(status)
		}
	}
	return s
}

func (s *Summary) add(status Status) {
	switch status {
	case StatusOK:
		s.OK++
	case StatusMismatch:
		s.Mismatch++
	case StatusMissing:
		s.Missing++
	case StatusMulticaseMatch:
		s.MulticaseMatch++
	case StatusMulticaseMismatch:
		s.MulticaseMismatch++
	}
}

// Total returns the number of (row, folder) statuses counted
func (s Summary) Total() int {
	return s.OK + s.MulticaseMatch + s.MulticaseMismatch + s.Mismatch + s.Missing
}

// Clean reports whether every status is OK
func (s Summary) Clean() bool {
	return s.Total() == s.OK
}
