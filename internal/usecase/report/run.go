package report

import (
	"context"
	"fmt"
	"log/slog"

	"world-report/internal/observability/logging"
	"world-report/internal/query"
	"world-report/internal/render"
)

// Report is a report request rendered into its table.
type Report struct {
	Request  query.Request
	Table    render.Table
	NotFound string
	// Err is nil, ErrNoData or the cause of a failed query.
	Err error
}

// Run executes req and renders the records with the family's columns.
func (s *Service) Run(ctx context.Context, req query.Request) Report {
	rep := Report{Request: req, NotFound: NotFoundMessage(req.Family)}

	switch req.Family {
	case query.FamilyCountry:
		res := s.Countries(ctx, req.Scope, req.Filter, req.Cardinality)
		rep.Table, rep.Err = CountryTable(res.Records), res.Status()
	case query.FamilyCity:
		res := s.Cities(ctx, req.Scope, req.Filter, req.Cardinality)
		rep.Table, rep.Err = CityTable(res.Records), res.Status()
	case query.FamilyCapital:
		res := s.Capitals(ctx, req.Scope, req.Filter, req.Cardinality)
		rep.Table, rep.Err = CapitalTable(res.Records), res.Status()
	case query.FamilyPopulationBreakdown:
		res := s.PopulationBreakdown(ctx, req.Scope)
		rep.Table, rep.Err = BreakdownTable(res.Records), res.Status()
	case query.FamilyPopulation:
		res := s.Population(ctx, req.Scope, req.Filter)
		rep.Table, rep.Err = PopulationTable(res.Records), res.Status()
	case query.FamilyLanguage:
		res := s.Languages(ctx)
		rep.Table, rep.Err = LanguageTable(res.Records), res.Status()
	default:
		rep.Err = fmt.Errorf("%w: %s", query.ErrUnsupportedVariant, req.Family)
		logging.FromContext(ctx).Error("report query failed", slog.Any("error", rep.Err))
	}
	return rep
}

var fileSlugs = map[query.Family]string{
	query.FamilyCountry:             "countries",
	query.FamilyCity:                "cities",
	query.FamilyCapital:             "capitals",
	query.FamilyPopulationBreakdown: "population-breakdown",
	query.FamilyPopulation:          "population",
	query.FamilyLanguage:            "languages",
}

// FileName returns the Markdown file name for req, for example
// "countries-continent-top3.md".
func FileName(req query.Request) string {
	slug, ok := fileSlugs[req.Family]
	if !ok {
		slug = req.Family.String()
	}
	name := slug + "-" + req.Scope.String()
	if req.Cardinality.IsTop() {
		name += "-" + req.Cardinality.String()
	}
	return name + ".md"
}
