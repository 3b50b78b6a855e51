package query_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"world-report/internal/query"
)

/* ──────────────────────────── ranked families ──────────────────────────── */

func TestSelector_Select_RankedVariants(t *testing.T) {
	sel := query.NewSelector(query.DialectMySQL, nil)

	tests := []struct {
		name      string
		req       query.Request
		wantWhere string
		wantLimit bool
		wantArgs  []any
	}{
		{
			name:     "all countries in the world",
			req:      query.Request{Family: query.FamilyCountry, Scope: query.ScopeWorld},
			wantArgs: nil,
		},
		{
			name:      "countries in a continent",
			req:       query.Request{Family: query.FamilyCountry, Scope: query.ScopeContinent, Filter: "Europe"},
			wantWhere: "WHERE country.Continent = ?",
			wantArgs:  []any{"Europe"},
		},
		{
			name:      "top N countries in the world",
			req:       query.Request{Family: query.FamilyCountry, Scope: query.ScopeWorld, Cardinality: query.Top(5)},
			wantLimit: true,
			wantArgs:  []any{5},
		},
		{
			name:      "top N countries in a region",
			req:       query.Request{Family: query.FamilyCountry, Scope: query.ScopeRegion, Filter: "Caribbean", Cardinality: query.Top(3)},
			wantWhere: "WHERE country.Region = ?",
			wantLimit: true,
			wantArgs:  []any{"Caribbean", 3},
		},
		{
			name:      "cities in a country",
			req:       query.Request{Family: query.FamilyCity, Scope: query.ScopeCountry, Filter: "Japan"},
			wantWhere: "WHERE country.Name = ?",
			wantArgs:  []any{"Japan"},
		},
		{
			name:      "top N cities in a district",
			req:       query.Request{Family: query.FamilyCity, Scope: query.ScopeDistrict, Filter: "Kabol", Cardinality: query.Top(2)},
			wantWhere: "WHERE city.District = ?",
			wantLimit: true,
			wantArgs:  []any{"Kabol", 2},
		},
		{
			name:      "capitals in a continent",
			req:       query.Request{Family: query.FamilyCapital, Scope: query.ScopeContinent, Filter: "Asia"},
			wantWhere: "WHERE country.Continent = ?",
			wantArgs:  []any{"Asia"},
		},
		{
			name:      "negative N is passed through",
			req:       query.Request{Family: query.FamilyCapital, Scope: query.ScopeWorld, Cardinality: query.Top(-1)},
			wantLimit: true,
			wantArgs:  []any{-1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := sel.Select(tt.req)
			require.NoError(t, err)

			if tt.wantWhere != "" {
				assert.Contains(t, stmt.SQL, tt.wantWhere)
			} else {
				// The capital subquery has its own inline WHERE.
				assert.NotContains(t, stmt.SQL, "\nWHERE ")
			}
			assert.Equal(t, tt.wantLimit, strings.HasSuffix(stmt.SQL, "LIMIT ?"))
			assert.Contains(t, stmt.SQL, "Population DESC")
			assert.Equal(t, tt.wantArgs, stmt.Args)
			assert.Equal(t, len(tt.wantArgs), strings.Count(stmt.SQL, "?"))
		})
	}
}

func TestSelector_Select_CountryCapitalSubquery(t *testing.T) {
	sel := query.NewSelector(query.DialectMySQL, nil)
	stmt, err := sel.Select(query.Request{Family: query.FamilyCountry, Scope: query.ScopeWorld})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "(SELECT city.Name FROM city WHERE city.ID = country.Capital) AS Capital")
}

func TestSelector_Select_FilterBeforeLimit(t *testing.T) {
	sel := query.NewSelector(query.DialectMySQL, nil)
	stmt, err := sel.Select(query.Request{
		Family: query.FamilyCity, Scope: query.ScopeRegion, Filter: "Eastern Asia", Cardinality: query.Top(10),
	})
	require.NoError(t, err)

	where := strings.Index(stmt.SQL, "= ?")
	limit := strings.Index(stmt.SQL, "LIMIT ?")
	require.True(t, where >= 0 && limit >= 0)
	assert.Less(t, where, limit)
	assert.Equal(t, []any{"Eastern Asia", 10}, stmt.Args)
}

/* ──────────────────────────── aggregate families ──────────────────────────── */

func TestSelector_Select_Breakdown(t *testing.T) {
	sel := query.NewSelector(query.DialectMySQL, nil)

	for scope, group := range map[query.Scope]string{
		query.ScopeContinent: "country.Continent",
		query.ScopeRegion:    "country.Region",
		query.ScopeCountry:   "country.Name",
	} {
		t.Run(scope.String(), func(t *testing.T) {
			stmt, err := sel.Select(query.Request{Family: query.FamilyPopulationBreakdown, Scope: scope})
			require.NoError(t, err)
			assert.Contains(t, stmt.SQL, "GROUP BY "+group)
			assert.Contains(t, stmt.SQL, "TotalPopulation")
			assert.Contains(t, stmt.SQL, "CityPopulation")
			assert.Empty(t, stmt.Args)
		})
	}
}

func TestSelector_Select_Population(t *testing.T) {
	sel := query.NewSelector(query.DialectMySQL, nil)

	stmt, err := sel.Select(query.Request{Family: query.FamilyPopulation, Scope: query.ScopeWorld})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "'World' AS Name")
	assert.Empty(t, stmt.Args)

	for _, scope := range []query.Scope{
		query.ScopeContinent, query.ScopeRegion, query.ScopeCountry, query.ScopeDistrict, query.ScopeCity,
	} {
		stmt, err := sel.Select(query.Request{Family: query.FamilyPopulation, Scope: scope, Filter: "X"})
		require.NoError(t, err, scope.String())
		assert.Equal(t, []any{"X"}, stmt.Args, scope.String())
	}
}

func TestSelector_Select_Language(t *testing.T) {
	sel := query.NewSelector(query.DialectMySQL, nil)
	stmt, err := sel.Select(query.Request{Family: query.FamilyLanguage, Scope: query.ScopeWorld})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "IN (?, ?, ?, ?, ?)")
	assert.Equal(t, []any{"Chinese", "English", "Hindi", "Spanish", "Arabic"}, stmt.Args)

	custom := query.NewSelector(query.DialectMySQL, []string{"French", "German"})
	stmt, err = custom.Select(query.Request{Family: query.FamilyLanguage, Scope: query.ScopeWorld})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "IN (?, ?)")
	assert.Equal(t, []string{"French", "German"}, custom.Languages())
}

func TestSelector_Select_Unsupported(t *testing.T) {
	sel := query.NewSelector(query.DialectMySQL, nil)

	tests := []struct {
		name string
		req  query.Request
	}{
		{"capital by district", query.Request{Family: query.FamilyCapital, Scope: query.ScopeDistrict, Filter: "x"}},
		{"country by city", query.Request{Family: query.FamilyCountry, Scope: query.ScopeCity, Filter: "x"}},
		{"breakdown of the world", query.Request{Family: query.FamilyPopulationBreakdown, Scope: query.ScopeWorld}},
		{"top N breakdown", query.Request{Family: query.FamilyPopulationBreakdown, Scope: query.ScopeRegion, Cardinality: query.Top(3)}},
		{"top N population", query.Request{Family: query.FamilyPopulation, Scope: query.ScopeWorld, Cardinality: query.Top(3)}},
		{"language by continent", query.Request{Family: query.FamilyLanguage, Scope: query.ScopeContinent}},
		{"unknown family", query.Request{Family: query.Family(99), Scope: query.ScopeWorld}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sel.Select(tt.req)
			assert.True(t, errors.Is(err, query.ErrUnsupportedVariant), "err=%v", err)
		})
	}
}

/* ──────────────────────────── dialects ──────────────────────────── */

func TestSelector_Select_PostgresPlaceholders(t *testing.T) {
	sel := query.NewSelector(query.DialectPostgres, nil)
	stmt, err := sel.Select(query.Request{
		Family: query.FamilyCity, Scope: query.ScopeContinent, Filter: "Europe", Cardinality: query.Top(3),
	})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "country.Continent = $1")
	assert.True(t, strings.HasSuffix(stmt.SQL, "LIMIT $2"))
	assert.NotContains(t, stmt.SQL, "?")
}

func TestParseFamilyAndScope(t *testing.T) {
	f, err := query.ParseFamily(" City ")
	require.NoError(t, err)
	assert.Equal(t, query.FamilyCity, f)

	s, err := query.ParseScope("district")
	require.NoError(t, err)
	assert.Equal(t, query.ScopeDistrict, s)

	_, err = query.ParseFamily("planet")
	assert.ErrorIs(t, err, query.ErrUnsupportedVariant)
	_, err = query.ParseScope("galaxy")
	assert.ErrorIs(t, err, query.ErrUnsupportedVariant)
}

func TestCardinality(t *testing.T) {
	assert.False(t, query.All().IsTop())
	assert.Equal(t, "all", query.All().String())
	assert.True(t, query.Top(0).IsTop())
	assert.Equal(t, 0, query.Top(0).Limit())
	assert.Equal(t, "top7", query.Top(7).String())
}
