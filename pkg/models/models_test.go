package models

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// ============== FolderIndex Tests ==============

func TestFolderIndex(t *testing.T) {
	t.Run("PreservesDiscoveryOrder", func(t *testing.T) {
		idx := NewFolderIndex("/root")
		idx.Add("b.txt", FileEntry{RelativePath: "b.txt"})
		idx.Add("a.txt", FileEntry{RelativePath: "a.txt"})
		idx.Add("b.txt", FileEntry{RelativePath: "B.txt"})

		keys := idx.Keys()
		if len(keys) != 2 || keys[0] != "b.txt" || keys[1] != "a.txt" {
			t.Errorf("Keys() = %v, want [b.txt a.txt]", keys)
		}

		entries, ok := idx.Entries("b.txt")
		if !ok {
			t.Fatal("Entries(b.txt) not found")
		}
		if len(entries) != 2 || entries[0].RelativePath != "b.txt" || entries[1].RelativePath != "B.txt" {
			t.Errorf("Entries(b.txt) = %v, want [b.txt B.txt]", entries)
		}
	})

	t.Run("Counts", func(t *testing.T) {
		idx := NewFolderIndex("/root")
		idx.Add("a", FileEntry{RelativePath: "a", Size: 10})
		idx.Add("a", FileEntry{RelativePath: "A", Size: 5})
		idx.Add("c", FileEntry{RelativePath: "c", Size: 1})

		if idx.Len() != 2 {
			t.Errorf("Len() = %d, want 2", idx.Len())
		}
		if idx.FileCount() != 3 {
			t.Errorf("FileCount() = %d, want 3", idx.FileCount())
		}
		if idx.TotalBytes() != 16 {
			t.Errorf("TotalBytes() = %d, want 16", idx.TotalBytes())
		}
	})

	t.Run("KeysIsACopy", func(t *testing.T) {
		idx := NewFolderIndex("/root")
		idx.Add("a", FileEntry{RelativePath: "a"})
		keys := idx.Keys()
		keys[0] = "changed"
		if idx.Keys()[0] != "a" {
			t.Error("modifying Keys() result changed the index")
		}
	})
}

// ============== FolderChecksums Tests ==============

func TestFolderChecksums(t *testing.T) {
	fc := NewFolderChecksums("/backup")
	fc.Set("a.txt", []ChecksumEntry{{CaseVariantPath: "a.txt", Digest: "01"}})
	fc.Set("empty", nil)

	if _, ok := fc.Get("empty"); ok {
		t.Error("Set with no entries should leave the key missing")
	}
	if fc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", fc.Len())
	}
	entries, ok := fc.Get("a.txt")
	if !ok || entries[0].Digest != "01" {
		t.Errorf("Get(a.txt) = %v, %v", entries, ok)
	}
}

// ============== Status & Summary Tests ==============

func TestStatusValues(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusOK, "OK"},
		{StatusMismatch, "MISMATCH"},
		{StatusMissing, "MISSING"},
		{StatusMulticaseMatch, "MULTICASE_MATCH"},
		{StatusMulticaseMismatch, "MULTICASE_MISMATCH"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if string(tt.status) != tt.expected {
				t.Errorf("Status = %s, want %s", string(tt.status), tt.expected)
			}
		})
	}

	if !StatusMulticaseMatch.IsMulticase() || !StatusMulticaseMismatch.IsMulticase() {
		t.Error("multicase statuses should report IsMulticase")
	}
	if StatusOK.IsMulticase() {
		t.Error("OK should not report IsMulticase")
	}
}

func TestSummarize(t *testing.T) {
	rows := []ComparisonRow{
		{Key: "a", Statuses: []Status{StatusOK, StatusOK, StatusMissing}},
		{Key: "b", Statuses: []Status{StatusMulticaseMatch, StatusMismatch, StatusMulticaseMismatch}},
	}

	s := Summarize(rows)

	want := Summary{Files: 2, OK: 2, MulticaseMatch: 1, MulticaseMismatch: 1, Mismatch: 1, Missing: 1}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}
	if s.Total() != 6 {
		t.Errorf("Total() = %d, want 6", s.Total())
	}
	if s.Clean() {
		t.Error("Clean() should be false with non-OK statuses")
	}

	if !Summarize(rows[:0]).Clean() {
		t.Error("empty summary should be clean")
	}
}

// ============== Operation Tests ==============

func TestCompareOperationValidate(t *testing.T) {
	valid := func() *CompareOperation {
		return &CompareOperation{
			Folders:    []string{"/a", "/b"},
			MaxWorkers: 1,
			BufferSize: 4096,
		}
	}

	tests := []struct {
		name   string
		mutate func(op *CompareOperation)
		field  string
	}{
		{"Valid", func(op *CompareOperation) {}, ""},
		{"SingleFolder", func(op *CompareOperation) { op.Folders = []string{"/a"} }, "Folders"},
		{"EmptyFolder", func(op *CompareOperation) { op.Folders = []string{"/a", ""} }, "Folders"},
		{"NoWorkers", func(op *CompareOperation) { op.MaxWorkers = 0 }, "MaxWorkers"},
		{"SmallBuffer", func(op *CompareOperation) { op.BufferSize = 10 }, "BufferSize"},
		{"NegativeBandwidth", func(op *CompareOperation) { op.BandwidthLimit = -1 }, "BandwidthLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := valid()
			tt.mutate(op)
			err := op.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %s, want %s", verr.Field, tt.field)
			}
		})
	}
}

func TestRoleForIndex(t *testing.T) {
	if RoleForIndex(0) != RolePrimary || RoleForIndex(1) != RoleSecondary || RoleForIndex(5) != RoleAdditional {
		t.Error("RoleForIndex returned unexpected roles")
	}
}

// ============== Error & Report Tests ==============

func TestIOErrorUnwrap(t *testing.T) {
	err := &IOError{Path: "/x", Op: "open", Err: fs.ErrPermission}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("IOError should unwrap to the underlying error")
	}
	if !strings.Contains(err.Error(), "open /x") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Path: "/missing", Reason: "not a directory"}
	if err.Error() != "folder not found: /missing (not a directory)" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		code   int
	}{
		{RunSuccess, 0},
		{RunPartial, 1},
		{RunFailed, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}
