// Package entity defines the report records produced from the world database.
// Records are built by the row mappers of the persistence layer and are never
// mutated after construction.
package entity

// Country is one row of a country report.
type Country struct {
	Code       string
	Name       string
	Continent  string
	Region     string
	Population int64
	// Capital is empty when the country has no linked capital city.
	Capital string
}

// City is one row of a city report.
type City struct {
	Name       string
	Country    string
	District   string
	Population int64
}

// Capital is one row of a capital city report.
type Capital struct {
	Name       string
	Country    string
	Population int64
}

// Population is a single scalar lookup: the population of the world,
// a continent, a region, a country, a district or a city.
type Population struct {
	Name       string
	Population int64
}

// PopulationSum is the raw grouped aggregate behind a PopulationBreakdown:
// the scope total and the sum of the populations of its cities.
type PopulationSum struct {
	Name  string
	Total int64
	Urban int64
}

// PopulationBreakdown splits the population of a continent, region or country
// into people living in cities and people who do not.
type PopulationBreakdown struct {
	Name        string
	Total       int64
	Urban       int64
	NonUrban    int64
	UrbanPct    float64
	NonUrbanPct float64
}

// LanguageShare is the share of one country's population speaking a language.
type LanguageShare struct {
	Language          string
	CountryPopulation int64
	Percentage        float64
}

// LanguageStat is the estimated number of speakers of a language and the
// share of the world population they represent.
type LanguageStat struct {
	Language string
	Speakers int64
	WorldPct float64
}
