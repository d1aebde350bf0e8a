package output

import (
	"encoding/json"
	"io"

	"github.com/sdejongh/foldercheck/pkg/models"
)

// JSONFormatter writes the report as indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return string(FormatJSON)
}

// Render encodes the whole report
func (f *JSONFormatter) Render(w io.Writer, report *models.ComparisonReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
