package models

// FileEntry represents a regular file discovered in a folder
type FileEntry struct {
	// RelativePath is the case-preserved path relative to the folder root,
	// always using forward slashes
	RelativePath string
	// AbsolutePath is the full path on the filesystem
	AbsolutePath string
	// Size in bytes at indexing time
	Size int64
}

// FolderIndex groups the files of one folder by case-insensitive relative path.
// Buckets keep case variants in discovery order.
type FolderIndex struct {
	// Root is the absolute folder path the index was built from
	Root string

	keys    []string
	buckets map[string][]FileEntry
}

// NewFolderIndex creates an empty index for the given root
func NewFolderIndex(root string) *FolderIndex {
	return &FolderIndex{
		Root:    root,
		buckets: make(map[string][]FileEntry),
	}
}

// Add appends an entry to the bucket for key.
// The caller is responsible for key being the folded form of entry.RelativePath.
func (idx *FolderIndex) Add(key string, entry FileEntry) {
	if _, exists := idx.buckets[key]; !exists {
		idx.keys = append(idx.keys, key)
	}
	idx.buckets[key] = append(idx.buckets[key], entry)
}

// Entries returns the case variants stored under key
func (idx *FolderIndex) Entries(key string) ([]FileEntry, bool) {
	entries, ok := idx.buckets[key]
	return entries, ok
}

// Keys returns the bucket keys in first-discovery order
func (idx *FolderIndex) Keys() []string {
	keys := make([]string, len(idx.keys))
	copy(keys, idx.keys)
	return keys
}

// Len returns the number of distinct case-insensitive paths
func (idx *FolderIndex) Len() int {
	return len(idx.keys)
}

// FileCount returns the number of files, counting every case variant
func (idx *FolderIndex) FileCount() int {
	total := 0
	for _, entries := range idx.buckets {
		total += len(entries)
	}
	return total
}

// TotalBytes returns the summed size of every file in the index
func (idx *FolderIndex) TotalBytes() int64 {
	var total int64
	for _, entries := range idx.buckets {
		for _, e := range entries {
			total += e.Size
		}
	}
	return total
}
