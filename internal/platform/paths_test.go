package platform

import (
	"path/filepath"
	"testing"
)

func TestRelSlash(t *testing.T) {
	base := filepath.Join("root", "folder")
	target := filepath.Join("root", "folder", "sub", "Dir", "File.TXT")

	rel, err := RelSlash(base, target)
	if err != nil {
		t.Fatalf("RelSlash() error = %v", err)
	}
	if rel != "sub/Dir/File.TXT" {
		t.Errorf("RelSlash() = %q, want sub/Dir/File.TXT", rel)
	}
}

func TestFoldKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.txt", "a.txt"},
		{"Dir/Foo.TXT", "dir/foo.txt"},
		{"ÄBC/é", "äbc/é"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FoldKey(tt.in); got != tt.want {
				t.Errorf("FoldKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShortenPath(t *testing.T) {
	t.Run("ShortPathUnchanged", func(t *testing.T) {
		if got := ShortenPath("/tmp/a"); got != "/tmp/a" {
			t.Errorf("ShortenPath() = %q", got)
		}
	})

	t.Run("LongPathShortened", func(t *testing.T) {
		got := ShortenPath("/mnt/backup/disk1/archive/photos")
		if got != "/mnt/backu...photos" {
			t.Errorf("ShortenPath() = %q, want /mnt/backu...photos", got)
		}
	})
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath(""); err == nil {
		t.Error("ValidatePath(\"\") should fail")
	}
	if err := ValidatePath("/some/folder"); err != nil {
		t.Errorf("ValidatePath() error = %v", err)
	}
}
