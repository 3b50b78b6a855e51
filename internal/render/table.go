// Package render turns record sequences into a column-aligned table model
// and prints it as a bordered text table. The same model feeds the Markdown
// report writer, so screen and file always show the same cells.
package render

import "strconv"

// Column describes one output column: its header and how a record renders
// into it. Numeric columns are right-aligned.
type Column[T any] struct {
	Header  string
	Value   func(*T) string
	Numeric bool
}

// Table is a rendered record sequence: headers plus one row of cells per
// record.
type Table struct {
	Headers []string
	Numeric []bool
	Rows    [][]string
}

// NewTable projects records onto cols. Nil records are skipped.
func NewTable[T any](records []*T, cols []Column[T]) Table {
	t := Table{
		Headers: make([]string, len(cols)),
		Numeric: make([]bool, len(cols)),
		Rows:    make([][]string, 0, len(records)),
	}
	for i, c := range cols {
		t.Headers[i] = c.Header
		t.Numeric[i] = c.Numeric
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.Value(rec)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Int formats an integer cell without grouping separators.
func Int(v int64) string { return strconv.FormatInt(v, 10) }

// Percent formats a percentage cell with two decimals.
func Percent(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
