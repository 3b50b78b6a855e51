package query

import (
	"fmt"
	"strings"
)

// DefaultLanguages is the fixed set of major world languages reported on.
var DefaultLanguages = []string{"Chinese", "English", "Hindi", "Spanish", "Arabic"}

const countrySelect = `
SELECT country.Code AS Code,
       country.Name AS Name,
       country.Continent AS Continent,
       country.Region AS Region,
       country.Population AS Population,
       (SELECT city.Name FROM city WHERE city.ID = country.Capital) AS Capital
FROM country`

const citySelect = `
SELECT city.Name AS Name,
       country.Name AS Country,
       city.District AS District,
       city.Population AS Population
FROM city
JOIN country ON city.CountryCode = country.Code`

const capitalSelect = `
SELECT city.Name AS Name,
       country.Name AS Country,
       city.Population AS Population
FROM city
JOIN country ON city.ID = country.Capital`

// breakdownSelect is formatted with the grouping column. City populations are
// summed per country before the join so that a country total is counted once
// however many cities it has.
const breakdownSelect = `
SELECT %[1]s AS Name,
       SUM(country.Population) AS TotalPopulation,
       SUM(COALESCE(urban.CityPopulation, 0)) AS CityPopulation
FROM country
LEFT JOIN (
    SELECT city.CountryCode AS CountryCode, SUM(city.Population) AS CityPopulation
    FROM city
    GROUP BY city.CountryCode
) urban ON urban.CountryCode = country.Code
GROUP BY %[1]s
ORDER BY TotalPopulation DESC, %[1]s ASC`

const languageSelect = `
SELECT countrylanguage.Language AS Language,
       country.Population AS Population,
       countrylanguage.Percentage AS Percentage
FROM country
JOIN countrylanguage ON country.Code = countrylanguage.CountryCode
WHERE countrylanguage.Language IN (%s)
ORDER BY countrylanguage.Language ASC, country.Code ASC`

// rankedFamily describes a family whose rows are ordered by population and
// may be limited to the top N.
type rankedFamily struct {
	base    string
	filters map[Scope]string
	order   string
}

var rankedFamilies = map[Family]rankedFamily{
	FamilyCountry: {
		base: countrySelect,
		filters: map[Scope]string{
			ScopeWorld:     "",
			ScopeContinent: "country.Continent",
			ScopeRegion:    "country.Region",
		},
		order: "ORDER BY country.Population DESC, country.Name ASC",
	},
	FamilyCity: {
		base: citySelect,
		filters: map[Scope]string{
			ScopeWorld:     "",
			ScopeContinent: "country.Continent",
			ScopeRegion:    "country.Region",
			ScopeCountry:   "country.Name",
			ScopeDistrict:  "city.District",
		},
		order: "ORDER BY city.Population DESC, city.Name ASC",
	},
	FamilyCapital: {
		base: capitalSelect,
		filters: map[Scope]string{
			ScopeWorld:     "",
			ScopeContinent: "country.Continent",
			ScopeRegion:    "country.Region",
		},
		order: "ORDER BY city.Population DESC, city.Name ASC",
	},
}

var breakdownGroups = map[Scope]string{
	ScopeContinent: "country.Continent",
	ScopeRegion:    "country.Region",
	ScopeCountry:   "country.Name",
}

var populationStatements = map[Scope]string{
	ScopeWorld: `
SELECT 'World' AS Name, SUM(country.Population) AS Population
FROM country`,
	ScopeContinent: `
SELECT country.Continent AS Name, SUM(country.Population) AS Population
FROM country
WHERE country.Continent = ?
GROUP BY country.Continent`,
	ScopeRegion: `
SELECT country.Region AS Name, SUM(country.Population) AS Population
FROM country
WHERE country.Region = ?
GROUP BY country.Region`,
	ScopeCountry: `
SELECT country.Name AS Name, country.Population AS Population
FROM country
WHERE country.Name = ?
ORDER BY country.Population DESC`,
	ScopeDistrict: `
SELECT city.District AS Name, SUM(city.Population) AS Population
FROM city
WHERE city.District = ?
GROUP BY city.District`,
	ScopeCity: `
SELECT city.Name AS Name, city.Population AS Population
FROM city
WHERE city.Name = ?
ORDER BY city.Population DESC`,
}

// Selector maps report requests onto statements for one SQL dialect.
type Selector struct {
	dialect   Dialect
	languages []string
}

// NewSelector creates a selector for the dialect. An empty language list
// falls back to DefaultLanguages.
func NewSelector(d Dialect, languages []string) *Selector {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	langs := make([]string, len(languages))
	copy(langs, languages)
	return &Selector{dialect: d, languages: langs}
}

// Languages returns the language set the language report covers.
func (s *Selector) Languages() []string {
	out := make([]string, len(s.languages))
	copy(out, s.languages)
	return out
}

// Select returns the statement for req. The bind values are the scope filter
// first and the row limit second, matching placeholder order. The language
// family binds the configured language set instead.
func (s *Selector) Select(req Request) (Statement, error) {
	switch req.Family {
	case FamilyCountry, FamilyCity, FamilyCapital:
		return s.ranked(req)
	case FamilyPopulationBreakdown:
		return s.breakdown(req)
	case FamilyPopulation:
		return s.population(req)
	case FamilyLanguage:
		return s.language(req)
	default:
		return Statement{}, fmt.Errorf("%w: %s", ErrUnsupportedVariant, req.Family)
	}
}

func (s *Selector) ranked(req Request) (Statement, error) {
	fam := rankedFamilies[req.Family]
	column, ok := fam.filters[req.Scope]
	if !ok {
		return Statement{}, unsupported(req)
	}

	var b strings.Builder
	var args []any
	b.WriteString(fam.base)
	if column != "" {
		b.WriteString("\nWHERE ")
		b.WriteString(column)
		b.WriteString(" = ?")
		args = append(args, req.Filter)
	}
	b.WriteString("\n")
	b.WriteString(fam.order)
	if req.Cardinality.IsTop() {
		b.WriteString("\nLIMIT ?")
		args = append(args, req.Cardinality.Limit())
	}
	return s.statement(b.String(), args), nil
}

func (s *Selector) breakdown(req Request) (Statement, error) {
	group, ok := breakdownGroups[req.Scope]
	if !ok || req.Cardinality.IsTop() {
		return Statement{}, unsupported(req)
	}
	return s.statement(fmt.Sprintf(breakdownSelect, group), nil), nil
}

func (s *Selector) population(req Request) (Statement, error) {
	sql, ok := populationStatements[req.Scope]
	if !ok || req.Cardinality.IsTop() {
		return Statement{}, unsupported(req)
	}
	var args []any
	if req.Scope.Filtered() {
		args = append(args, req.Filter)
	}
	return s.statement(sql, args), nil
}

func (s *Selector) language(req Request) (Statement, error) {
	if req.Scope != ScopeWorld || req.Cardinality.IsTop() {
		return Statement{}, unsupported(req)
	}
	placeholders := make([]string, len(s.languages))
	args := make([]any, len(s.languages))
	for i, lang := range s.languages {
		placeholders[i] = "?"
		args[i] = lang
	}
	return s.statement(fmt.Sprintf(languageSelect, strings.Join(placeholders, ", ")), args), nil
}

func (s *Selector) statement(sql string, args []any) Statement {
	return Statement{SQL: Rebind(s.dialect, strings.TrimSpace(sql)), Args: args}
}

func unsupported(req Request) error {
	return fmt.Errorf("%w: %s by %s (%s)", ErrUnsupportedVariant, req.Family, req.Scope, req.Cardinality)
}
