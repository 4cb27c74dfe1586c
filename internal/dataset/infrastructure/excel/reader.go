package excel

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	dataset "market-dashboard/internal/dataset/domain"
)

// ColumnPredicate reports whether a value column should be loaded.
// Identity columns are always kept regardless of the predicate.
type ColumnPredicate func(header string) bool

// KeepAll loads every column.
func KeepAll(string) bool { return true }

// Reader loads a workbook's first sheet into a RawTable.
type Reader struct {
	logger *log.Logger
}

// NewReader constructs a Reader.
func NewReader(logger *log.Logger) *Reader {
	return &Reader{logger: logger}
}

// Load reads the first sheet of the workbook at path, keeping the identity
// columns plus every column accepted by keep. The first row is the header.
func (r *Reader) Load(path string, keep ColumnPredicate) (*dataset.RawTable, error) {
	if keep == nil {
		keep = KeepAll
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", dataset.ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && r.logger != nil {
			r.logger.Printf("close workbook %s: %v", path, cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, dataset.ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, dataset.ErrEmptyTable
	}

	headers := rows[0]
	cols := selectColumns(headers, keep)
	if len(cols) == 0 {
		return nil, dataset.ErrMissingIdentityColumn
	}

	kept := make([]string, 0, len(cols))
	for _, c := range cols {
		kept = append(kept, headers[c])
	}
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if c < len(row) {
				cells[i] = row[c]
			}
		}
		data = append(data, cells)
	}
	return dataset.NewRawTable(kept, data)
}

func selectColumns(headers []string, keep ColumnPredicate) []int {
	var cols []int
	for i, h := range headers {
		trimmed := strings.TrimSpace(h)
		if trimmed == dataset.ColumnAgent || trimmed == dataset.ColumnCompany || keep(trimmed) {
			cols = append(cols, i)
		}
	}
	return cols
}
