// Package repository declares the read-only store boundary of the report engine.
package repository

import (
	"context"
	"database/sql"

	"world-report/internal/domain/entity"
	"world-report/internal/query"
)

// Querier is the read-only surface of the shared store handle.
// *sql.DB and the circuit-breaker wrapper both satisfy it. Implementations
// are not required to be safe for concurrent use.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ReportRepository runs report variants against the world database and maps
// the rows into records. Errors are returned as is; deciding what a failed
// report looks like is up to the caller.
type ReportRepository interface {
	Countries(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) ([]*entity.Country, error)
	Cities(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) ([]*entity.City, error)
	Capitals(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) ([]*entity.Capital, error)
	PopulationSums(ctx context.Context, scope query.Scope) ([]*entity.PopulationSum, error)
	Populations(ctx context.Context, scope query.Scope, filter string) ([]*entity.Population, error)
	LanguageShares(ctx context.Context) ([]*entity.LanguageShare, error)
}
