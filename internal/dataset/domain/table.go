package dataset

import "strings"

// Identity columns every source workbook must carry.
const (
	ColumnAgent   = "AGENTE"
	ColumnCompany = "EMPRESA"
)

// RawTable is the rectangular table read from a source workbook.
// Headers are trimmed of surrounding whitespace; the table is immutable
// after construction.
type RawTable struct {
	headers []string
	rows    [][]string
	index   map[string]int
}

// NewRawTable builds a RawTable from a header row and data rows.
// Invariants:
// 1) Both identity columns must be present.
// 2) At least one data row must exist.
func NewRawTable(headers []string, rows [][]string) (*RawTable, error) {
	trimmed := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		trimmed[i] = name
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	if _, ok := index[ColumnAgent]; !ok {
		return nil, ErrMissingIdentityColumn
	}
	if _, ok := index[ColumnCompany]; !ok {
		return nil, ErrMissingIdentityColumn
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	return &RawTable{headers: trimmed, rows: rows, index: index}, nil
}

// Headers returns the trimmed column names in source order.
func (t *RawTable) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// Column returns the index of the named column.
func (t *RawTable) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// NumRows returns the number of data rows.
func (t *RawTable) NumRows() int { return len(t.rows) }

// Cell returns the raw cell value at (row, col), or "" when the row is
// ragged and does not reach the column.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 {
		return ""
	}
	cells := t.rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}
