package excel

import (
	"fmt"
	"os"
	"strings"

	"waterdash/domain/dataset"
	"waterdash/internal"
	"waterdash/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader loads the city metrics workbook into a normalized table. It is
// read-only: nothing here ever writes to the workbook.
type DataReader struct {
	path      string
	sheet     string
	colStart  int // zero-based, inclusive
	colEnd    int // zero-based, inclusive
	headerRow int // zero-based
	logger    *internal.Logger
}

// NewDataReader creates a reader for one workbook location. columnRange is an
// Excel-style range such as "F:N"; headerRow is the zero-based index of the
// row holding the column names.
func NewDataReader(path, sheet, columnRange string, headerRow int, logger *internal.Logger) (*DataReader, error) {
	colStart, colEnd, err := parseColumnRange(columnRange)
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	if headerRow < 0 {
		return nil, errors.ConfigInvalid("header row index cannot be negative")
	}
	return &DataReader{
		path:      path,
		sheet:     sheet,
		colStart:  colStart,
		colEnd:    colEnd,
		headerRow: headerRow,
		logger:    logger,
	}, nil
}

// Load reads the workbook and returns the normalized table.
//
// A missing file is not an error: it returns (nil, nil) and the dashboard
// renders its empty state. A file that exists but cannot be parsed returns a
// DATA_UNREADABLE error and never a partial table.
func (r *DataReader) Load() (*dataset.Table, error) {
	if _, err := os.Stat(r.path); err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug("[DataReader] workbook not found: %s", r.path)
			return nil, nil
		}
		return nil, errors.DataUnreadable(fmt.Sprintf("failed to stat workbook %s", r.path), err)
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, errors.DataUnreadable(fmt.Sprintf("failed to open workbook %s", r.path), err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, errors.DataUnreadable(fmt.Sprintf("failed to read sheet %s", r.sheet), err)
	}

	table := r.normalize(rows)
	r.logger.Info("[DataReader] workbook loaded (%d columns, %d rows)", len(table.Columns), len(table.Rows))
	return table, nil
}

// normalize slices each sheet row to the configured column range and builds
// the table: probed header row, trimmed column names, and only the data rows
// whose key cell is non-blank, in source order.
func (r *DataReader) normalize(rows [][]string) *dataset.Table {
	// The configured range is intersected with the sheet's used width, so a
	// narrower sheet yields a narrower table rather than phantom blank
	// columns filling out the range.
	colEnd := r.colEnd
	if widest := sheetWidth(rows) - 1; colEnd > widest {
		colEnd = widest
	}
	if colEnd < r.colStart {
		return &dataset.Table{}
	}
	nCols := colEnd - r.colStart + 1

	headerIdx := r.headerRow
	headers := sliceRange(rowAt(rows, headerIdx), r.colStart, nCols)

	// Some exports push the real header down one row and leave filler above
	// it. Probe once: if the first header cell is a placeholder, take the
	// next row instead. Whatever the second read yields is final.
	if isPlaceholderHeader(headers[0]) {
		headerIdx++
		headers = sliceRange(rowAt(rows, headerIdx), r.colStart, nCols)
		r.logger.Debug("[DataReader] placeholder header at row %d, using row %d", r.headerRow, headerIdx)
	}

	columns := make([]string, len(headers))
	for i, header := range headers {
		columns[i] = strings.TrimSpace(header)
	}

	var dataRows []dataset.Row
	for i := headerIdx + 1; i < len(rows); i++ {
		cells := sliceRange(rows[i], r.colStart, nCols)
		if strings.TrimSpace(cells[0]) == "" {
			continue
		}
		row := make(dataset.Row, len(columns))
		for j, cell := range cells {
			row[columns[j]] = strings.TrimSpace(cell)
		}
		dataRows = append(dataRows, row)
	}

	return &dataset.Table{Columns: columns, Rows: dataRows}
}

// sliceRange cuts one sheet row down to n cells starting at start, padding
// with empty cells where the row runs short. GetRows drops trailing empty
// cells, so short rows are routine, not an error.
func sliceRange(row []string, start, n int) []string {
	out := make([]string, n)
	for i := range out {
		if src := start + i; src < len(row) {
			out[i] = row[src]
		}
	}
	return out
}

// sheetWidth returns the widest row in the sheet.
func sheetWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// rowAt returns the sheet row at idx, or nil past the end of the sheet.
func rowAt(rows [][]string, idx int) []string {
	if idx < len(rows) {
		return rows[idx]
	}
	return nil
}

// isPlaceholderHeader reports whether a header cell is filler rather than a
// real column name: blank after trimming, or the literal "Unnamed" prefix
// some export tools bake into headerless columns.
func isPlaceholderHeader(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	return trimmed == "" || strings.HasPrefix(trimmed, "Unnamed")
}

// parseColumnRange converts an Excel-style range like "F:N" to zero-based
// inclusive column indices.
func parseColumnRange(spec string) (int, int, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("column range must look like F:N, got %q", spec)
	}
	start, err := excelize.ColumnNameToNumber(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column range start %q: %w", parts[0], err)
	}
	end, err := excelize.ColumnNameToNumber(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column range end %q: %w", parts[1], err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("column range %q runs backwards", spec)
	}
	return start - 1, end - 1, nil
}
