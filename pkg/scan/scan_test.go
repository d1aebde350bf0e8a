package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/foldercheck/pkg/models"
)

// makeTree creates files (slash-separated names) under a new temp folder
func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create parent dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
	return root
}

// caseSensitiveFS reports whether dir distinguishes Foo from foo
func caseSensitiveFS(t *testing.T, dir string) bool {
	t.Helper()
	probe := filepath.Join(dir, "CaseProbe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		t.Fatalf("failed to create probe: %v", err)
	}
	defer os.Remove(probe)
	_, err := os.Stat(filepath.Join(dir, "caseprobe"))
	return os.IsNotExist(err)
}

func TestIndexPath(t *testing.T) {
	ctx := context.Background()

	t.Run("GroupsByLowerCasedSlashPath", func(t *testing.T) {
		root := makeTree(t, map[string]string{
			"a.txt":          "hi",
			"Docs/Readme.md": "readme",
			"docs/deep/x.go": "package x",
		})

		idx, err := NewIndexer(nil, nil).IndexPath(ctx, root)
		if err != nil {
			t.Fatalf("IndexPath() error = %v", err)
		}

		if idx.Len() != 3 {
			t.Errorf("Len() = %d, want 3 (keys %v)", idx.Len(), idx.Keys())
		}
		entries, ok := idx.Entries("docs/readme.md")
		if !ok {
			t.Fatalf("key docs/readme.md missing, keys %v", idx.Keys())
		}
		if entries[0].RelativePath != "Docs/Readme.md" {
			t.Errorf("RelativePath = %s, want case preserved Docs/Readme.md", entries[0].RelativePath)
		}
		if !filepath.IsAbs(entries[0].AbsolutePath) {
			t.Errorf("AbsolutePath = %s, want absolute", entries[0].AbsolutePath)
		}
		if entries[0].Size != int64(len("readme")) {
			t.Errorf("Size = %d", entries[0].Size)
		}
	})

	t.Run("CaseVariantsShareBucket", func(t *testing.T) {
		root := t.TempDir()
		if !caseSensitiveFS(t, root) {
			t.Skip("filesystem is case-insensitive")
		}
		for _, name := range []string{"Foo.txt", "foo.txt"} {
			if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0644); err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
		}

		idx, err := NewIndexer(nil, nil).IndexPath(ctx, root)
		if err != nil {
			t.Fatalf("IndexPath() error = %v", err)
		}

		entries, _ := idx.Entries("foo.txt")
		if len(entries) != 2 {
			t.Fatalf("bucket foo.txt has %d entries, want 2", len(entries))
		}
		// Lexical walk order: upper case sorts first
		if entries[0].RelativePath != "Foo.txt" || entries[1].RelativePath != "foo.txt" {
			t.Errorf("bucket order = %s, %s", entries[0].RelativePath, entries[1].RelativePath)
		}
		if idx.Len() != 1 || idx.FileCount() != 2 {
			t.Errorf("Len() = %d, FileCount() = %d", idx.Len(), idx.FileCount())
		}
	})

	t.Run("EmptyFolder", func(t *testing.T) {
		idx, err := NewIndexer(nil, nil).IndexPath(ctx, t.TempDir())
		if err != nil {
			t.Fatalf("IndexPath() error = %v", err)
		}
		if idx.Len() != 0 {
			t.Errorf("Len() = %d, want 0", idx.Len())
		}
	})

	t.Run("MissingFolder", func(t *testing.T) {
		_, err := NewIndexer(nil, nil).IndexPath(ctx, filepath.Join(t.TempDir(), "nope"))
		var nf *models.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("IndexPath() error = %v, want *models.NotFoundError", err)
		}
	})

	t.Run("DeterministicOrder", func(t *testing.T) {
		root := makeTree(t, map[string]string{"c": "1", "a/b": "2", "b": "3"})
		ix := NewIndexer(nil, nil)

		first, err := ix.IndexPath(ctx, root)
		if err != nil {
			t.Fatalf("IndexPath() error = %v", err)
		}
		second, _ := ix.IndexPath(ctx, root)

		k1, k2 := first.Keys(), second.Keys()
		for i := range k1 {
			if k1[i] != k2[i] {
				t.Fatalf("key order differs between runs: %v vs %v", k1, k2)
			}
		}
	})

	t.Run("ExcludePatterns", func(t *testing.T) {
		root := makeTree(t, map[string]string{
			"keep.txt":         "k",
			"scratch.tmp":      "t",
			".git/config":      "g",
			"src/.git/HEAD":    "h",
			"build/out.o":      "o",
			"src/cache/item":   "c",
			"src/keep/main.go": "m",
		})

		ix := NewIndexer([]string{"*.tmp", ".git/", "build/*.o", "**/cache"}, nil)
		idx, err := ix.IndexPath(ctx, root)
		if err != nil {
			t.Fatalf("IndexPath() error = %v", err)
		}

		keys := idx.Keys()
		if len(keys) != 2 {
			t.Fatalf("Keys() = %v, want keep.txt and src/keep/main.go", keys)
		}
		if _, ok := idx.Entries("keep.txt"); !ok {
			t.Error("keep.txt should be indexed")
		}
		if _, ok := idx.Entries("src/keep/main.go"); !ok {
			t.Error("src/keep/main.go should be indexed")
		}
	})
}

func TestExcluder(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"NoPatterns", nil, "a.txt", false},
		{"BaseNameGlob", []string{"*.log"}, "logs/app.log", true},
		{"BaseNameNoMatch", []string{"*.log"}, "logs/app.txt", false},
		{"DirAtRoot", []string{"node_modules/"}, "node_modules/x/y.js", true},
		{"DirNested", []string{"node_modules/"}, "web/node_modules/x.js", true},
		{"DirPrefixOnly", []string{"node_modules/"}, "node_modules_old/x.js", false},
		{"PathGlob", []string{"build/*.o"}, "build/main.o", true},
		{"PathGlobDeeper", []string{"build/*.o"}, "src/build/main.o", false},
		{"AnyDepthFile", []string{"**/*.bak"}, "a/b/c.bak", true},
		{"AnyDepthDir", []string{"**/cache"}, "a/cache/file", true},
		{"BackslashPattern", []string{"build\\*.o"}, "build/main.o", true},
		{"BlankPattern", []string{"  "}, "a.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewExcluder(tt.patterns).Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) with %v = %v, want %v", tt.path, tt.patterns, got, tt.want)
			}
		})
	}
}
