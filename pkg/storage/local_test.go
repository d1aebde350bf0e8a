package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sdejongh/foldercheck/pkg/models"
)

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		tempDir := t.TempDir()

		local, err := NewLocal(tempDir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		if local == nil {
			t.Fatal("NewLocal() returned nil")
		}
		defer local.Close()

		if !filepath.IsAbs(local.Root()) {
			t.Errorf("Root() = %s, want absolute path", local.Root())
		}
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal("/nonexistent/path/that/does/not/exist")
		var nf *models.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("NewLocal() error = %v, want *models.NotFoundError", err)
		}
		if nf.Reason != "does not exist" {
			t.Errorf("Reason = %q", nf.Reason)
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "plain.txt")
		if err := os.WriteFile(tempFile, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		_, err := NewLocal(tempFile)
		var nf *models.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("NewLocal() error = %v, want *models.NotFoundError", err)
		}
		if nf.Reason != "not a directory" {
			t.Errorf("Reason = %q", nf.Reason)
		}
	})

	t.Run("RelativePath", func(t *testing.T) {
		tempDir := t.TempDir()

		oldWd, _ := os.Getwd()
		os.Chdir(filepath.Dir(tempDir))
		defer os.Chdir(oldWd)

		local, err := NewLocal(filepath.Base(tempDir))
		if err != nil {
			t.Fatalf("NewLocal() should work with relative path: %v", err)
		}
		defer local.Close()
	})
}

// TestLocalWalk tests the Walk method
func TestLocalWalk(t *testing.T) {
	tempDir := t.TempDir()

	files := map[string][]byte{
		"file1.txt":            []byte("content1"),
		"file2.txt":            []byte("content2"),
		"subdir/file3.txt":     []byte("content3"),
		"subdir/deep/file4.go": []byte("content4"),
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tempDir, "emptydir"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("RegularFilesOnly", func(t *testing.T) {
		var seen []string
		err := local.Walk(ctx, func(info FileInfo) error {
			seen = append(seen, info.RelativePath)
			if info.Size != int64(len(files[info.RelativePath])) {
				t.Errorf("%s size = %d, want %d", info.RelativePath, info.Size, len(files[info.RelativePath]))
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		want := []string{"file1.txt", "file2.txt", "subdir/deep/file4.go", "subdir/file3.txt"}
		if len(seen) != len(want) {
			t.Fatalf("Walk() visited %v, want %v", seen, want)
		}
		for i := range want {
			if seen[i] != want[i] {
				t.Errorf("visit %d = %s, want %s", i, seen[i], want[i])
			}
		}
	})

	t.Run("SkipsSymlinks", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need elevated privileges on Windows")
		}
		link := filepath.Join(tempDir, "link.txt")
		if err := os.Symlink(filepath.Join(tempDir, "file1.txt"), link); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}
		defer os.Remove(link)

		err := local.Walk(ctx, func(info FileInfo) error {
			if info.RelativePath == "link.txt" {
				t.Error("Walk() reported a symlink")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
	})

	t.Run("CallbackErrorStopsWalk", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		err := local.Walk(ctx, func(info FileInfo) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("Walk() error = %v, want wrapped stop", err)
		}
		if calls != 1 {
			t.Errorf("callback called %d times, want 1", calls)
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := local.Walk(ctx, func(FileInfo) error { return nil })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Walk() error = %v, want context.Canceled", err)
		}
	})
}
