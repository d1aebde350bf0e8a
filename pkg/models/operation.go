package models

import (
	"time"
)

// FolderRole describes the part a folder plays in a comparison
type FolderRole string

const (
	// RolePrimary is the reference folder
	RolePrimary FolderRole = "primary"
	// RoleSecondary is the first folder compared against the primary
	RoleSecondary FolderRole = "secondary"
	// RoleAdditional is any further folder
	RoleAdditional FolderRole = "additional"
)

// RoleForIndex returns the role of the folder at position i of the argument list
func RoleForIndex(i int) FolderRole {
	switch i {
	case 0:
		return RolePrimary
	case 1:
		return RoleSecondary
	default:
		return RoleAdditional
	}
}

// FolderInfo identifies a folder taking part in a comparison
type FolderInfo struct {
	Index        int        `json:"index"`
	Path         string     `json:"path"`
	Role         FolderRole `json:"role"`
	FilesIndexed int        `json:"files_indexed"`
	BytesIndexed int64      `json:"bytes_indexed"`
}

// CompareOperation represents a comparison run configuration
type CompareOperation struct {
	ID              string
	Folders         []string // primary first
	ExcludePatterns []string
	SkipUnreadable  bool
	MaxWorkers      int
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	BufferSize      int
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if len(op.Folders) < 2 {
		return &ValidationError{Field: "Folders", Message: "at least two folders are required"}
	}
	for i, f := range op.Folders {
		if f == "" {
			return &ValidationError{Field: "Folders", Message: "folder path " + string(RoleForIndex(i)) + " is empty"}
		}
	}
	if op.MaxWorkers < 1 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers must be at least 1"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if op.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "bandwidth limit cannot be negative"}
	}
	return nil
}
