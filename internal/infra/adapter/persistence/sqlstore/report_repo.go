package sqlstore

import (
	"context"
	"fmt"

	"world-report/internal/domain/entity"
	"world-report/internal/query"
	"world-report/internal/repository"
)

type ReportRepo struct {
	db       repository.Querier
	selector *query.Selector
}

func NewReportRepo(db repository.Querier, selector *query.Selector) repository.ReportRepository {
	return &ReportRepo{db: db, selector: selector}
}

func (repo *ReportRepo) Countries(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) ([]*entity.Country, error) {
	countries, err := fetch(ctx, repo, query.Request{
		Family: query.FamilyCountry, Scope: scope, Filter: filter, Cardinality: card,
	}, mapCountry)
	if err != nil {
		return nil, fmt.Errorf("Countries: %w", err)
	}
	return countries, nil
}

func (repo *ReportRepo) Cities(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) ([]*entity.City, error) {
	cities, err := fetch(ctx, repo, query.Request{
		Family: query.FamilyCity, Scope: scope, Filter: filter, Cardinality: card,
	}, mapCity)
	if err != nil {
		return nil, fmt.Errorf("Cities: %w", err)
	}
	return cities, nil
}

func (repo *ReportRepo) Capitals(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) ([]*entity.Capital, error) {
	capitals, err := fetch(ctx, repo, query.Request{
		Family: query.FamilyCapital, Scope: scope, Filter: filter, Cardinality: card,
	}, mapCapital)
	if err != nil {
		return nil, fmt.Errorf("Capitals: %w", err)
	}
	return capitals, nil
}

func (repo *ReportRepo) PopulationSums(ctx context.Context, scope query.Scope) ([]*entity.PopulationSum, error) {
	sums, err := fetch(ctx, repo, query.Request{
		Family: query.FamilyPopulationBreakdown, Scope: scope,
	}, mapPopulationSum)
	if err != nil {
		return nil, fmt.Errorf("PopulationSums: %w", err)
	}
	return sums, nil
}

func (repo *ReportRepo) Populations(ctx context.Context, scope query.Scope, filter string) ([]*entity.Population, error) {
	pops, err := fetch(ctx, repo, query.Request{
		Family: query.FamilyPopulation, Scope: scope, Filter: filter,
	}, mapPopulation)
	if err != nil {
		return nil, fmt.Errorf("Populations: %w", err)
	}
	return pops, nil
}

func (repo *ReportRepo) LanguageShares(ctx context.Context) ([]*entity.LanguageShare, error) {
	shares, err := fetch(ctx, repo, query.Request{
		Family: query.FamilyLanguage, Scope: query.ScopeWorld,
	}, mapLanguageShare)
	if err != nil {
		return nil, fmt.Errorf("LanguageShares: %w", err)
	}
	return shares, nil
}

func fetch[T any](ctx context.Context, repo *ReportRepo, req query.Request, mapRow RowMapper[T]) ([]*T, error) {
	stmt, err := repo.selector.Select(req)
	if err != nil {
		return nil, err
	}
	return Run(ctx, repo.db, req.Family, stmt, mapRow)
}
