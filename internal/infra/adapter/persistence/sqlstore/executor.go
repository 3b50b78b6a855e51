package sqlstore

import (
	"context"
	"fmt"
	"time"

	"world-report/internal/observability/metrics"
	"world-report/internal/observability/tracing"
	"world-report/internal/query"
	"world-report/internal/repository"
)

// Run executes stmt and maps every row with mapRow, preserving the order
// the store returned. The first row that fails to map aborts the query.
func Run[T any](ctx context.Context, db repository.Querier, family query.Family, stmt query.Statement, mapRow RowMapper[T]) (records []*T, err error) {
	ctx, span := tracing.StartQuerySpan(ctx, family.String(), stmt.SQL)
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(family.String(), time.Since(start))
		tracing.EndQuerySpan(span, len(records), err)
	}()

	rows, err := db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	index := columnIndex(cols)

	records = make([]*T, 0, 32)
	for rows.Next() {
		row, err := scanRow(rows, index, len(cols))
		if err != nil {
			return nil, err
		}
		rec, err := mapRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
