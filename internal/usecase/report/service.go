package report

import (
	"context"
	"log/slog"

	"world-report/internal/domain/entity"
	"world-report/internal/observability/logging"
	"world-report/internal/observability/metrics"
	"world-report/internal/query"
	"world-report/internal/repository"
)

// Result is the outcome of one report query. Records is never nil; Err is
// set only when the query failed, so an empty Records with a nil Err means
// the store genuinely had no match.
type Result[T any] struct {
	Records []*T
	Err     error
}

// Status returns Err, ErrNoData for an empty successful result, or nil.
func (r Result[T]) Status() error {
	if r.Err != nil {
		return r.Err
	}
	if len(r.Records) == 0 {
		return ErrNoData
	}
	return nil
}

// Service runs report queries. Store failures never escape it: they are
// logged through the context logger and turned into empty results.
type Service struct {
	Repo repository.ReportRepository
}

// Countries lists countries in scope ordered by population, largest first.
func (s *Service) Countries(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) Result[entity.Country] {
	records, err := s.Repo.Countries(ctx, scope, filter, card)
	return settle(ctx, query.Request{Family: query.FamilyCountry, Scope: scope, Filter: filter, Cardinality: card}, records, err)
}

// Cities lists cities in scope ordered by population, largest first.
func (s *Service) Cities(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) Result[entity.City] {
	records, err := s.Repo.Cities(ctx, scope, filter, card)
	return settle(ctx, query.Request{Family: query.FamilyCity, Scope: scope, Filter: filter, Cardinality: card}, records, err)
}

// Capitals lists capital cities in scope ordered by population, largest first.
func (s *Service) Capitals(ctx context.Context, scope query.Scope, filter string, card query.Cardinality) Result[entity.Capital] {
	records, err := s.Repo.Capitals(ctx, scope, filter, card)
	return settle(ctx, query.Request{Family: query.FamilyCapital, Scope: scope, Filter: filter, Cardinality: card}, records, err)
}

// PopulationBreakdown splits the population of every continent, region or
// country into people living in cities and people not living in cities.
func (s *Service) PopulationBreakdown(ctx context.Context, scope query.Scope) Result[entity.PopulationBreakdown] {
	req := query.Request{Family: query.FamilyPopulationBreakdown, Scope: scope}
	sums, err := s.Repo.PopulationSums(ctx, scope)
	if err != nil {
		return settle[entity.PopulationBreakdown](ctx, req, nil, err)
	}

	records := make([]*entity.PopulationBreakdown, 0, len(sums))
	for _, sum := range sums {
		if sum == nil {
			continue
		}
		b, clamped := Breakdown(sum)
		if clamped {
			logging.FromContext(ctx).Warn("city population exceeds total, clamped",
				slog.String("name", sum.Name),
				slog.Int64("total", sum.Total),
				slog.Int64("city_population", sum.Urban))
		}
		records = append(records, b)
	}
	return settle(ctx, req, records, nil)
}

// Population returns the population of a single world, continent, region,
// country, district or city.
func (s *Service) Population(ctx context.Context, scope query.Scope, filter string) Result[entity.Population] {
	records, err := s.Repo.Populations(ctx, scope, filter)
	return settle(ctx, query.Request{Family: query.FamilyPopulation, Scope: scope, Filter: filter}, records, err)
}

// Languages estimates how many people speak each configured language and
// which share of the world population that is.
func (s *Service) Languages(ctx context.Context) Result[entity.LanguageStat] {
	req := query.Request{Family: query.FamilyLanguage, Scope: query.ScopeWorld}

	shares, err := s.Repo.LanguageShares(ctx)
	if err != nil {
		return settle[entity.LanguageStat](ctx, req, nil, err)
	}
	world, err := s.Repo.Populations(ctx, query.ScopeWorld, "")
	if err != nil {
		return settle[entity.LanguageStat](ctx, req, nil, err)
	}

	var worldTotal int64
	for _, p := range world {
		if p != nil {
			worldTotal += p.Population
		}
	}
	return settle(ctx, req, EstimateSpeakers(shares, worldTotal), nil)
}

func settle[T any](ctx context.Context, req query.Request, records []*T, err error) Result[T] {
	family, scope := req.Family.String(), req.Scope.String()
	logger := logging.FromContext(ctx).With(
		slog.String("family", family),
		slog.String("scope", scope),
		slog.String("cardinality", req.Cardinality.String()),
	)
	if req.Filter != "" {
		logger = logger.With(slog.String("filter", req.Filter))
	}

	metrics.RecordReportQuery(family, scope, len(records), err)
	if err != nil {
		logger.Error("report query failed", slog.Any("error", err))
		return Result[T]{Records: []*T{}, Err: err}
	}
	if records == nil {
		records = []*T{}
	}
	logger.Debug("report query completed", slog.Int("rows", len(records)))
	return Result[T]{Records: records}
}
