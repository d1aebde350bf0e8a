package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/foldercheck/pkg/models"
)

// Format names an output rendering
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// SortOrder controls the row order of rendered tables
type SortOrder string

const (
	// SortPath orders rows by case-insensitive path
	SortPath SortOrder = "path"
	// SortDiscovery keeps the primary folder's discovery order
	SortDiscovery SortOrder = "discovery"
)

// Formatter renders a comparison report
// Implementations include table and JSON formatters
type Formatter interface {
	// Render writes the complete report to w
	Render(w io.Writer, report *models.ComparisonReport) error

	// Name returns the formatter name
	Name() string
}

// Options tunes the table formatter
type Options struct {
	Color bool
	Sort  SortOrder
}

// NewFormatter returns the formatter for format
func NewFormatter(format Format, opts Options) (Formatter, error) {
	switch format {
	case FormatTable, "":
		return NewTableFormatter(opts), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}
