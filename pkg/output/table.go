package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/sdejongh/foldercheck/internal/platform"
	"github.com/sdejongh/foldercheck/pkg/models"
)

// TableFormatter renders the status matrix as a table followed by a summary
type TableFormatter struct {
	sort SortOrder

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color
}

// NewTableFormatter creates a table formatter
func NewTableFormatter(opts Options) *TableFormatter {
	f := &TableFormatter{
		sort:   opts.Sort,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		cyan:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{f.green, f.yellow, f.red, f.cyan} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Name returns the formatter name
func (f *TableFormatter) Name() string {
	return string(FormatTable)
}

// Render writes the folder list, the table, the summary and any unreadable files
func (f *TableFormatter) Render(w io.Writer, report *models.ComparisonReport) error {
	f.writeFolders(w, report.Folders)

	if len(report.Rows) == 0 {
		fmt.Fprintln(w, "No files found for comparison.")
		f.writeFailures(w, report.Failures)
		return nil
	}

	table := tablewriter.NewWriter(w)
	header := []string{"Filename", "Checksum"}
	for _, folder := range report.Folders {
		header = append(header, platform.ShortenPath(folder.Path))
	}
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range f.orderRows(report.Rows) {
		cells := []string{row.Path, row.ReferenceDigest}
		for _, status := range row.Statuses {
			cells = append(cells, f.colorStatus(status))
		}
		table.Append(cells)
	}
	table.Render()

	f.writeSummary(w, report.Summary)
	f.writeFailures(w, report.Failures)

	fmt.Fprintf(w, "\n%s\n", f.cyan.Sprintf("Folder comparison completed in %.2f seconds.", report.Duration.Seconds()))
	return nil
}

func (f *TableFormatter) writeFolders(w io.Writer, folders []models.FolderInfo) {
	fmt.Fprintf(w, "Comparing %d folders:\n", len(folders))
	for _, folder := range folders {
		fmt.Fprintf(w, "  - %s: %s (%d files, %s)\n",
			RoleLabel(folder.Role), folder.Path, folder.FilesIndexed, humanize.IBytes(uint64(folder.BytesIndexed)))
	}
	fmt.Fprintln(w)
}

func (f *TableFormatter) writeSummary(w io.Writer, s models.Summary) {
	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "Total files checked: %d\n", s.Files)
	fmt.Fprintf(w, "Files equal (%s): %d\n", f.colorStatus(models.StatusOK), s.OK)
	fmt.Fprintf(w, "Files with multiple case variations, all equal (%s): %d\n", f.colorStatus(models.StatusMulticaseMatch), s.MulticaseMatch)
	fmt.Fprintf(w, "Files with multiple case variations, not all equal (%s): %d\n", f.colorStatus(models.StatusMulticaseMismatch), s.MulticaseMismatch)
	fmt.Fprintf(w, "Files not equal (%s): %d\n", f.colorStatus(models.StatusMismatch), s.Mismatch)
	fmt.Fprintf(w, "Files missing (%s): %d\n", f.colorStatus(models.StatusMissing), s.Missing)
}

func (f *TableFormatter) writeFailures(w io.Writer, failures []models.DigestFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", f.red.Sprintf("Unreadable files (%d):", len(failures)))
	for _, fail := range failures {
		fmt.Fprintf(w, "  %s: %s\n    %s\n", fail.Folder, fail.RelativePath, fail.Error)
	}
}

// orderRows returns rows sorted by key unless discovery order is requested
func (f *TableFormatter) orderRows(rows []models.ComparisonRow) []models.ComparisonRow {
	if f.sort == SortDiscovery {
		return rows
	}
	sorted := make([]models.ComparisonRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

func (f *TableFormatter) colorStatus(s models.Status) string {
	switch s {
	case models.StatusOK, models.StatusMulticaseMatch:
		return f.green.Sprint(string(s))
	case models.StatusMismatch, models.StatusMulticaseMismatch:
		return f.yellow.Sprint(string(s))
	case models.StatusMissing:
		return f.red.Sprint(string(s))
	default:
		return string(s)
	}
}

// RoleLabel returns the display label of a folder role
func RoleLabel(role models.FolderRole) string {
	s := string(role)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
