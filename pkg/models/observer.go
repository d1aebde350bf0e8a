package models

// Observer receives progress notifications while folders are digested.
// Implementations must be safe for concurrent use when more than one worker runs.
type Observer interface {
	// FolderStarted is called before the first file of a folder is digested
	FolderStarted(folder FolderInfo, totalFiles int)

	// FileChecked is called after each file, err is set when the file was skipped
	FileChecked(folder FolderInfo, relativePath string, size int64, err error)

	// FolderFinished is called once all files of a folder are processed
	FolderFinished(folder FolderInfo)
}

// NopObserver discards all notifications
type NopObserver struct{}

func (NopObserver) FolderStarted(FolderInfo, int) {}

func (NopObserver) FileChecked(FolderInfo, string, int64, error) {}

func (NopObserver) FolderFinished(FolderInfo) {}
