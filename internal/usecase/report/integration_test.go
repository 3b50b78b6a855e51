package report_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"world-report/internal/infra/adapter/persistence/sqlstore"
	"world-report/internal/infra/markdown"
	"world-report/internal/query"
	"world-report/internal/render"
	"world-report/internal/usecase/report"
	"world-report/tests/fixtures"
)

func newWorldService(t *testing.T) *report.Service {
	t.Helper()
	db := fixtures.OpenWorldDB(t)
	return &report.Service{Repo: sqlstore.NewReportRepo(db, query.NewSelector(query.DialectSQLite, nil))}
}

func TestWorld_TopCountriesInEurope(t *testing.T) {
	svc := newWorldService(t)

	res := svc.Countries(context.Background(), query.ScopeContinent, "Europe", query.Top(3))

	require.NoError(t, res.Err)
	require.Len(t, res.Records, 3)
	names := []string{res.Records[0].Name, res.Records[1].Name, res.Records[2].Name}
	assert.Equal(t, []string{"Germany", "United Kingdom", "France"}, names)
	for i, c := range res.Records {
		assert.Equal(t, "Europe", c.Continent)
		if i > 0 {
			assert.GreaterOrEqual(t, res.Records[i-1].Population, c.Population)
		}
	}
	assert.Equal(t, "Berlin", res.Records[0].Capital)
}

func TestWorld_WorldPopulation(t *testing.T) {
	svc := newWorldService(t)

	res := svc.Population(context.Background(), query.ScopeWorld, "")

	require.NoError(t, res.Err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "World", res.Records[0].Name)
	assert.Equal(t, fixtures.WorldPopulation(), res.Records[0].Population)
}

func TestWorld_SinglePopulationScopes(t *testing.T) {
	svc := newWorldService(t)
	tests := []struct {
		scope  query.Scope
		filter string
		want   int64
	}{
		{query.ScopeContinent, "Europe", 240455500},
		{query.ScopeRegion, "Eastern Asia", 1404272000},
		{query.ScopeCountry, "Japan", 126714000},
		{query.ScopeDistrict, "England", 8298000},
		{query.ScopeCity, "Kabul", 1780000},
	}
	for _, tt := range tests {
		t.Run(tt.scope.String(), func(t *testing.T) {
			res := svc.Population(context.Background(), tt.scope, tt.filter)
			require.NoError(t, res.Err)
			require.Len(t, res.Records, 1)
			assert.Equal(t, tt.filter, res.Records[0].Name)
			assert.Equal(t, tt.want, res.Records[0].Population)
		})
	}
}

func TestWorld_NoMatchRendersNotFoundAndWritesNoFile(t *testing.T) {
	svc := newWorldService(t)
	dir := filepath.Join(t.TempDir(), "reports")
	writer := markdown.NewWriter(dir, nil)

	rep := svc.Run(context.Background(), query.Request{
		Family: query.FamilyCountry, Scope: query.ScopeContinent, Filter: "Atlantis",
	})

	assert.ErrorIs(t, rep.Err, report.ErrNoData)
	var out bytes.Buffer
	require.NoError(t, render.Fprint(&out, rep.Table, rep.NotFound))
	assert.Equal(t, "No countries found\n", out.String())

	assert.Empty(t, writer.Save(report.FileName(rep.Request), rep.Table))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestWorld_StoreFailureYieldsEmptySequence(t *testing.T) {
	db := fixtures.OpenWorldDB(t)
	svc := &report.Service{Repo: sqlstore.NewReportRepo(db, query.NewSelector(query.DialectSQLite, nil))}
	require.NoError(t, db.Close())

	res := svc.Cities(context.Background(), query.ScopeWorld, "", query.All())

	assert.Error(t, res.Err)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
}

func TestWorld_TopOneIsPrefixOfAll(t *testing.T) {
	svc := newWorldService(t)
	ctx := context.Background()
	tests := []struct {
		family query.Family
		scope  query.Scope
		filter string
	}{
		{query.FamilyCountry, query.ScopeWorld, ""},
		{query.FamilyCountry, query.ScopeContinent, "Asia"},
		{query.FamilyCountry, query.ScopeRegion, "Western Europe"},
		{query.FamilyCity, query.ScopeWorld, ""},
		{query.FamilyCity, query.ScopeContinent, "North America"},
		{query.FamilyCity, query.ScopeRegion, "Eastern Asia"},
		{query.FamilyCity, query.ScopeCountry, "United States"},
		{query.FamilyCity, query.ScopeDistrict, "England"},
		{query.FamilyCapital, query.ScopeWorld, ""},
		{query.FamilyCapital, query.ScopeContinent, "Europe"},
		{query.FamilyCapital, query.ScopeRegion, "Southern and Central Asia"},
	}
	for _, tt := range tests {
		t.Run(tt.family.String()+"/"+tt.scope.String(), func(t *testing.T) {
			all := svc.Run(ctx, query.Request{Family: tt.family, Scope: tt.scope, Filter: tt.filter, Cardinality: query.All()})
			top := svc.Run(ctx, query.Request{Family: tt.family, Scope: tt.scope, Filter: tt.filter, Cardinality: query.Top(1)})

			require.NoError(t, all.Err)
			require.NoError(t, top.Err)
			require.Len(t, top.Table.Rows, 1)
			assert.Equal(t, all.Table.Rows[0], top.Table.Rows[0])
		})
	}
}

func TestWorld_CitiesOrderedByPopulation(t *testing.T) {
	svc := newWorldService(t)

	res := svc.Cities(context.Background(), query.ScopeWorld, "", query.All())

	require.NoError(t, res.Err)
	require.Len(t, res.Records, len(fixtures.Cities))
	assert.Equal(t, "Mumbai (Bombay)", res.Records[0].Name)
	for i := 1; i < len(res.Records); i++ {
		assert.GreaterOrEqual(t, res.Records[i-1].Population, res.Records[i].Population)
	}
}

func TestWorld_CapitalsWorldTopThree(t *testing.T) {
	svc := newWorldService(t)

	res := svc.Capitals(context.Background(), query.ScopeWorld, "", query.Top(3))

	require.NoError(t, res.Err)
	require.Len(t, res.Records, 3)
	assert.Equal(t, "Ciudad de México", res.Records[0].Name)
	assert.Equal(t, "Mexico", res.Records[0].Country)
	assert.Equal(t, "Tokyo", res.Records[1].Name)
	assert.Equal(t, "Peking", res.Records[2].Name)
}

func TestWorld_NonPositiveLimitIsLeftToTheStore(t *testing.T) {
	svc := newWorldService(t)
	ctx := context.Background()

	zero := svc.Countries(ctx, query.ScopeWorld, "", query.Top(0))
	require.NoError(t, zero.Err)
	assert.Empty(t, zero.Records)

	// SQLite treats a negative LIMIT as no limit.
	negative := svc.Countries(ctx, query.ScopeWorld, "", query.Top(-1))
	require.NoError(t, negative.Err)
	assert.Len(t, negative.Records, len(fixtures.Countries))
}

func TestWorld_BreakdownInvariants(t *testing.T) {
	svc := newWorldService(t)

	for _, scope := range []query.Scope{query.ScopeContinent, query.ScopeRegion, query.ScopeCountry} {
		t.Run(scope.String(), func(t *testing.T) {
			res := svc.PopulationBreakdown(context.Background(), scope)
			require.NoError(t, res.Err)
			require.NotEmpty(t, res.Records)

			for _, b := range res.Records {
				require.NoError(t, b.Validate(), b.Name)
				assert.Equal(t, b.Total, b.Urban+b.NonUrban, b.Name)
				if b.Total > 0 {
					assert.InDelta(t, 100.0, b.UrbanPct+b.NonUrbanPct, 0.1, b.Name)
				} else {
					assert.Equal(t, 0.0, b.UrbanPct, b.Name)
					assert.Equal(t, 0.0, b.NonUrbanPct, b.Name)
				}
			}
		})
	}
}

func TestWorld_BreakdownCountsCountryOnce(t *testing.T) {
	svc := newWorldService(t)

	res := svc.PopulationBreakdown(context.Background(), query.ScopeContinent)

	require.NoError(t, res.Err)
	byName := map[string]int64{}
	urban := map[string]int64{}
	for _, b := range res.Records {
		byName[b.Name] = b.Total
		urban[b.Name] = b.Urban
	}
	assert.Equal(t, int64(240455500), byName["Europe"])
	assert.Equal(t, int64(18393700), urban["Europe"])
	assert.Equal(t, int64(0), byName["Antarctica"])
	assert.Equal(t, "Asia", res.Records[0].Name)
}

func TestWorld_Languages(t *testing.T) {
	svc := newWorldService(t)

	res := svc.Languages(context.Background())

	require.NoError(t, res.Err)
	got := make([]string, 0, len(res.Records))
	for i, l := range res.Records {
		got = append(got, l.Language)
		assert.GreaterOrEqual(t, l.WorldPct, 0.0)
		assert.LessOrEqual(t, l.WorldPct, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, res.Records[i-1].Speakers, l.Speakers)
		}
	}
	assert.Equal(t, []string{"Chinese", "Hindi", "English", "Spanish", "Arabic"}, got)
	assert.Equal(t, int64(1175353360), res.Records[0].Speakers)
	assert.Equal(t, 37.59, res.Records[0].WorldPct)
	assert.Equal(t, int64(297957302), res.Records[2].Speakers)
	assert.Equal(t, int64(141290801), res.Records[3].Speakers)
}

func TestWorld_ConsoleAndMarkdownShowSameCells(t *testing.T) {
	svc := newWorldService(t)
	dir := t.TempDir()
	writer := markdown.NewWriter(dir, nil)

	rep := svc.Run(context.Background(), query.Request{
		Family: query.FamilyCity, Scope: query.ScopeCountry, Filter: "United States", Cardinality: query.Top(2),
	})
	require.NoError(t, rep.Err)

	var out bytes.Buffer
	require.NoError(t, render.Fprint(&out, rep.Table, rep.NotFound))
	path := writer.Save(report.FileName(rep.Request), rep.Table)
	require.Equal(t, filepath.Join(dir, "cities-country-top2.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, row := range rep.Table.Rows {
		for _, cell := range row {
			assert.Contains(t, out.String(), cell)
			assert.Contains(t, string(data), cell)
		}
	}
	assert.Contains(t, string(data), "| New York | United States | New York | 8008278 |")
}
