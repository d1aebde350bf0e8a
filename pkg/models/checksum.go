package models

// ChecksumEntry is the digest of one case variant of a path
type ChecksumEntry struct {
	CaseVariantPath string `json:"path"`
	Digest          string `json:"digest"`
}

// DigestFailure records a file that could not be digested and was skipped
type DigestFailure struct {
	Folder       string `json:"folder"`
	RelativePath string `json:"path"`
	Error        string `json:"error"`
}

// FolderChecksums holds the digests computed for one folder, restricted to the
// primary folder's key set
type FolderChecksums struct {
	// Folder is the folder root the checksums belong to
	Folder string
	// Failures lists entries skipped because they could not be read
	Failures []DigestFailure

	keys []string
	sums map[string][]ChecksumEntry
}

// NewFolderChecksums creates an empty checksum collection for folder
func NewFolderChecksums(folder string) *FolderChecksums {
	return &FolderChecksums{
		Folder: folder,
		sums:   make(map[string][]ChecksumEntry),
	}
}

// Set stores the digests for key. Empty slices are ignored so that a key
// whose every variant was skipped reads as missing.
func (fc *FolderChecksums) Set(key string, entries []ChecksumEntry) {
	if len(entries) == 0 {
		return
	}
	if _, exists := fc.sums[key]; !exists {
		fc.keys = append(fc.keys, key)
	}
	fc.sums[key] = entries
}

// Get returns the digests recorded for key
func (fc *FolderChecksums) Get(key string) ([]ChecksumEntry, bool) {
	entries, ok := fc.sums[key]
	return entries, ok
}

// Keys returns the recorded keys in insertion order
func (fc *FolderChecksums) Keys() []string {
	keys := make([]string, len(fc.keys))
	copy(keys, fc.keys)
	return keys
}

// Len returns the number of recorded keys
func (fc *FolderChecksums) Len() int {
	return len(fc.keys)
}
