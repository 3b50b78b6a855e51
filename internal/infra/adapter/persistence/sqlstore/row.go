package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrMissingColumn is returned when a result set lacks a column a row mapper
// needs. It signals a schema mismatch rather than bad data.
var ErrMissingColumn = errors.New("missing column")

// cell holds one raw column value as returned by the driver.
type cell struct{ v any }

// Scan implements sql.Scanner. Byte slices are copied because drivers may
// reuse the buffer on the next call to Next.
func (c *cell) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		c.v = string(b)
		return nil
	}
	c.v = src
	return nil
}

// Row is one result row addressed by column name. Column names match
// case-insensitively so that stores which fold unquoted identifiers to
// lower case map the same way as those that keep them.
type Row struct {
	index map[string]int
	cells []cell
	err   error
}

func columnIndex(cols []string) map[string]int {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[strings.ToLower(c)] = i
	}
	return index
}

func scanRow(rows *sql.Rows, index map[string]int, n int) (*Row, error) {
	r := &Row{index: index, cells: make([]cell, n)}
	dest := make([]any, n)
	for i := range r.cells {
		dest[i] = &r.cells[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return r, nil
}

// Err returns the first error met by the accessors.
func (r *Row) Err() error { return r.err }

func (r *Row) lookup(col string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	i, ok := r.index[strings.ToLower(col)]
	if !ok {
		r.err = fmt.Errorf("%w: %s", ErrMissingColumn, col)
		return nil, false
	}
	return r.cells[i].v, true
}

func (r *Row) fail(col string, v any, target string) {
	r.err = fmt.Errorf("column %s: cannot convert %T %v to %s", col, v, v, target)
}

// String returns a text column. NULL maps to the empty string.
func (r *Row) String(col string) string {
	v, ok := r.lookup(col)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// Int64 returns an integer column. NULL maps to zero; decimal values, as
// returned for SUM aggregates by some stores, are rounded.
func (r *Row) Int64(col string) int64 {
	v, ok := r.lookup(col)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case nil:
		return 0
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case float64:
		return int64(math.Round(x))
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(math.Round(f))
		}
	}
	r.fail(col, v, "int64")
	return 0
}

// Float64 returns a numeric column. NULL maps to zero.
func (r *Row) Float64(col string) float64 {
	v, ok := r.lookup(col)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f
		}
	}
	r.fail(col, v, "float64")
	return 0
}
