package digest

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/sdejongh/foldercheck/pkg/models"
)

// Name identifies the content digest in reports
const Name = "xxh64"

// Size is the length of a hex-encoded digest
const Size = 16

const minBufferSize = 4096

// ReaderWrapper wraps a file reader before it is hashed (e.g., for rate limiting)
type ReaderWrapper func(ctx context.Context, r io.Reader) io.Reader

// Engine computes xxHash64 content digests with streaming reads.
// An Engine is safe for concurrent use.
type Engine struct {
	bufferSize    int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper
}

// NewEngine creates a digest engine reading files in bufferSize chunks
func NewEngine(bufferSize int) *Engine {
	if bufferSize < minBufferSize {
		bufferSize = minBufferSize
	}
	return &Engine{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetReaderWrapper sets a function to wrap readers (e.g., for rate limiting)
func (e *Engine) SetReaderWrapper(wrapper ReaderWrapper) {
	e.readerWrapper = wrapper
}

// BufferSize returns the read chunk size
func (e *Engine) BufferSize() int {
	return e.bufferSize
}

// File returns the lowercase hex digest of the file at absolutePath.
// Open and read failures are returned as *models.IOError.
func (e *Engine) File(ctx context.Context, absolutePath string) (string, error) {
	f, err := os.Open(absolutePath)
	if err != nil {
		return "", &models.IOError{Path: absolutePath, Op: "open", Err: err}
	}
	defer f.Close()

	sum, err := e.Reader(ctx, f)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", &models.IOError{Path: absolutePath, Op: "read", Err: err}
	}
	return sum, nil
}

// Reader returns the lowercase hex digest of everything read from r
func (e *Engine) Reader(ctx context.Context, r io.Reader) (string, error) {
	if e.readerWrapper != nil {
		r = e.readerWrapper(ctx, r)
	}

	hasher := xxhash.New()

	// Get buffer from pool
	bufPtr := e.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer e.bufferPool.Put(bufPtr)

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := r.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return Format(hasher.Sum64()), nil
}

// Bytes returns the digest of data
func Bytes(data []byte) string {
	return Format(xxhash.Sum64(data))
}

// Format encodes a raw 64-bit digest as fixed-width lowercase hex
func Format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
