package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/sdejongh/foldercheck/internal/platform"
	"github.com/sdejongh/foldercheck/pkg/models"
)

const (
	defaultTermWidth = 120
	refreshRate      = 100 * time.Millisecond
	progressTemplate = `{{string . "label"}} {{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }} {{string . "bytes"}} {{etime . }}`
)

// ProgressObserver draws one progress bar per folder while it is digested.
// It implements models.Observer and is safe for concurrent use.
type ProgressObserver struct {
	writer io.Writer
	width  int

	mu    sync.Mutex
	bar   *pb.ProgressBar
	bytes int64
	fails int
}

// NewProgressObserver creates a progress observer writing to w
func NewProgressObserver(w io.Writer) *ProgressObserver {
	if w == nil {
		w = os.Stderr
	}
	return &ProgressObserver{
		writer: w,
		width:  terminalWidth(w),
	}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// terminalWidth detects the width of w, falling back to a default for pipes
func terminalWidth(w io.Writer) int {
	if file, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// FolderStarted starts a bar sized to the folder's file count
func (p *ProgressObserver) FolderStarted(folder models.FolderInfo, totalFiles int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		p.bar.Finish()
	}
	p.bytes = 0
	p.fails = 0

	label := fmt.Sprintf("%s %s", RoleLabel(folder.Role), platform.ShortenPath(folder.Path))
	p.bar = pb.New(totalFiles).
		SetTemplateString(progressTemplate).
		SetWriter(p.writer).
		SetWidth(p.width).
		SetRefreshRate(refreshRate).
		Set("label", label).
		Set("bytes", humanize.IBytes(0)).
		Start()
}

// FileChecked advances the bar by one file
func (p *ProgressObserver) FileChecked(folder models.FolderInfo, relativePath string, size int64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		return
	}

	if err != nil {
		p.fails++
	} else {
		p.bytes += size
	}
	p.bar.Set("bytes", humanize.IBytes(uint64(p.bytes)))
	p.bar.Increment()
}

// FolderFinished completes the current bar
func (p *ProgressObserver) FolderFinished(folder models.FolderInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		return
	}

	p.bar.Finish()
	p.bar = nil
	if p.fails > 0 {
		fmt.Fprintf(p.writer, "  %d unreadable files skipped\n", p.fails)
	}
}
