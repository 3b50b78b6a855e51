package menu

import "world-report/internal/query"

// Entry is one numbered menu choice.
type Entry struct {
	Choice int
	Label  string
	Family query.Family
	Scope  query.Scope
	// Top entries prompt for N after the scope filter.
	Top bool
}

// Entries lists every choice in display order. Choice 0 exits.
var Entries = []Entry{
	{1, "All countries in the world", query.FamilyCountry, query.ScopeWorld, false},
	{2, "All countries in a continent", query.FamilyCountry, query.ScopeContinent, false},
	{3, "All countries in a region", query.FamilyCountry, query.ScopeRegion, false},
	{4, "Top N countries in the world", query.FamilyCountry, query.ScopeWorld, true},
	{5, "Top N countries in a continent", query.FamilyCountry, query.ScopeContinent, true},
	{6, "Top N countries in a region", query.FamilyCountry, query.ScopeRegion, true},
	{7, "All the cities in the world", query.FamilyCity, query.ScopeWorld, false},
	{8, "All the cities in a continent", query.FamilyCity, query.ScopeContinent, false},
	{9, "All the cities in a region", query.FamilyCity, query.ScopeRegion, false},
	{10, "All the cities in a country", query.FamilyCity, query.ScopeCountry, false},
	{11, "All the cities in a district", query.FamilyCity, query.ScopeDistrict, false},
	{12, "Top N cities in the world", query.FamilyCity, query.ScopeWorld, true},
	{13, "Top N cities in a continent", query.FamilyCity, query.ScopeContinent, true},
	{14, "Top N cities in a region", query.FamilyCity, query.ScopeRegion, true},
	{15, "Top N cities in a country", query.FamilyCity, query.ScopeCountry, true},
	{16, "Top N cities in a district", query.FamilyCity, query.ScopeDistrict, true},
	{17, "All the capital cities in the world", query.FamilyCapital, query.ScopeWorld, false},
	{18, "All the capital cities in a continent", query.FamilyCapital, query.ScopeContinent, false},
	{19, "All the capital cities in a region", query.FamilyCapital, query.ScopeRegion, false},
	{20, "Top N capital cities in the world", query.FamilyCapital, query.ScopeWorld, true},
	{21, "Top N capital cities in a continent", query.FamilyCapital, query.ScopeContinent, true},
	{22, "Top N capital cities in a region", query.FamilyCapital, query.ScopeRegion, true},
	{23, "Population in and out of cities by continent", query.FamilyPopulationBreakdown, query.ScopeContinent, false},
	{24, "Population in and out of cities by region", query.FamilyPopulationBreakdown, query.ScopeRegion, false},
	{25, "Population in and out of cities by country", query.FamilyPopulationBreakdown, query.ScopeCountry, false},
	{26, "Population of the world", query.FamilyPopulation, query.ScopeWorld, false},
	{27, "Population of a continent", query.FamilyPopulation, query.ScopeContinent, false},
	{28, "Population of a region", query.FamilyPopulation, query.ScopeRegion, false},
	{29, "Population of a country", query.FamilyPopulation, query.ScopeCountry, false},
	{30, "Population of a district", query.FamilyPopulation, query.ScopeDistrict, false},
	{31, "Population of a city", query.FamilyPopulation, query.ScopeCity, false},
	{32, "Speakers of major world languages", query.FamilyLanguage, query.ScopeWorld, false},
}

// Lookup returns the entry for choice.
func Lookup(choice int) (Entry, bool) {
	for _, e := range Entries {
		if e.Choice == choice {
			return e, true
		}
	}
	return Entry{}, false
}

// needsFilter reports whether the entry prompts for a scope value. Breakdown
// entries group by their scope instead of filtering on it.
func (e Entry) needsFilter() bool {
	return e.Scope.Filtered() && e.Family != query.FamilyPopulationBreakdown
}

var filterPrompts = map[query.Scope]string{
	query.ScopeContinent: "Enter continent: ",
	query.ScopeRegion:    "Enter region: ",
	query.ScopeCountry:   "Enter country: ",
	query.ScopeDistrict:  "Enter district: ",
	query.ScopeCity:      "Enter city: ",
}
