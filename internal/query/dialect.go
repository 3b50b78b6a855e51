package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect is the placeholder style of the target store.
type Dialect int

const (
	// DialectMySQL uses "?" placeholders.
	DialectMySQL Dialect = iota
	// DialectPostgres uses "$1".."$N" placeholders.
	DialectPostgres
	// DialectSQLite uses "?" placeholders.
	DialectSQLite
)

// DialectForDriver maps a database/sql driver name to its dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return DialectMySQL, nil
	case "pgx", "postgres":
		return DialectPostgres, nil
	case "sqlite3", "sqlite":
		return DialectSQLite, nil
	default:
		return 0, fmt.Errorf("no SQL dialect for driver %q", driver)
	}
}

// Rebind rewrites "?" placeholders into the dialect's placeholder style,
// numbering them left to right. Question marks inside single-quoted string
// literals are left untouched.
func Rebind(d Dialect, sql string) string {
	if d != DialectPostgres {
		return sql
	}

	var b strings.Builder
	b.Grow(len(sql) + 8)
	n := 0
	inLiteral := false
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '\'':
			inLiteral = !inLiteral
			b.WriteByte(ch)
		case ch == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
