package report

import (
	"world-report/internal/domain/entity"
	"world-report/internal/query"
	"world-report/internal/render"
)

var countryColumns = []render.Column[entity.Country]{
	{Header: "Code", Value: func(c *entity.Country) string { return c.Code }},
	{Header: "Name", Value: func(c *entity.Country) string { return c.Name }},
	{Header: "Continent", Value: func(c *entity.Country) string { return c.Continent }},
	{Header: "Region", Value: func(c *entity.Country) string { return c.Region }},
	{Header: "Population", Value: func(c *entity.Country) string { return render.Int(c.Population) }, Numeric: true},
	{Header: "Capital", Value: func(c *entity.Country) string { return c.Capital }},
}

var cityColumns = []render.Column[entity.City]{
	{Header: "Name", Value: func(c *entity.City) string { return c.Name }},
	{Header: "Country", Value: func(c *entity.City) string { return c.Country }},
	{Header: "District", Value: func(c *entity.City) string { return c.District }},
	{Header: "Population", Value: func(c *entity.City) string { return render.Int(c.Population) }, Numeric: true},
}

var capitalColumns = []render.Column[entity.Capital]{
	{Header: "Name", Value: func(c *entity.Capital) string { return c.Name }},
	{Header: "Country", Value: func(c *entity.Capital) string { return c.Country }},
	{Header: "Population", Value: func(c *entity.Capital) string { return render.Int(c.Population) }, Numeric: true},
}

var breakdownColumns = []render.Column[entity.PopulationBreakdown]{
	{Header: "Name", Value: func(b *entity.PopulationBreakdown) string { return b.Name }},
	{Header: "Total_Population", Value: func(b *entity.PopulationBreakdown) string { return render.Int(b.Total) }, Numeric: true},
	{Header: "City_Population", Value: func(b *entity.PopulationBreakdown) string { return render.Int(b.Urban) }, Numeric: true},
	{Header: "% in cities", Value: func(b *entity.PopulationBreakdown) string { return render.Percent(b.UrbanPct) }, Numeric: true},
	{Header: "No_City_Population", Value: func(b *entity.PopulationBreakdown) string { return render.Int(b.NonUrban) }, Numeric: true},
	{Header: "% in non cities", Value: func(b *entity.PopulationBreakdown) string { return render.Percent(b.NonUrbanPct) }, Numeric: true},
}

var populationColumns = []render.Column[entity.Population]{
	{Header: "Name", Value: func(p *entity.Population) string { return p.Name }},
	{Header: "Population", Value: func(p *entity.Population) string { return render.Int(p.Population) }, Numeric: true},
}

var languageColumns = []render.Column[entity.LanguageStat]{
	{Header: "Language", Value: func(l *entity.LanguageStat) string { return l.Language }},
	{Header: "Population", Value: func(l *entity.LanguageStat) string { return render.Int(l.Speakers) }, Numeric: true},
	{Header: "PercentageOfWorld", Value: func(l *entity.LanguageStat) string { return render.Percent(l.WorldPct) }, Numeric: true},
}

var notFoundMessages = map[query.Family]string{
	query.FamilyCountry:             "No countries found",
	query.FamilyCity:                "No cities found",
	query.FamilyCapital:             "No capitals found",
	query.FamilyPopulationBreakdown: "Population not found",
	query.FamilyPopulation:          "Population not found",
	query.FamilyLanguage:            "No Languages found",
}

// NotFoundMessage returns the line printed for an empty report of family f.
func NotFoundMessage(f query.Family) string {
	if msg, ok := notFoundMessages[f]; ok {
		return msg
	}
	return "No data found"
}

// CountryTable renders country records.
func CountryTable(records []*entity.Country) render.Table {
	return render.NewTable(records, countryColumns)
}

// CityTable renders city records.
func CityTable(records []*entity.City) render.Table {
	return render.NewTable(records, cityColumns)
}

// CapitalTable renders capital records.
func CapitalTable(records []*entity.Capital) render.Table {
	return render.NewTable(records, capitalColumns)
}

// BreakdownTable renders population breakdown records.
func BreakdownTable(records []*entity.PopulationBreakdown) render.Table {
	return render.NewTable(records, breakdownColumns)
}

// PopulationTable renders single population records.
func PopulationTable(records []*entity.Population) render.Table {
	return render.NewTable(records, populationColumns)
}

// LanguageTable renders language statistics.
func LanguageTable(records []*entity.LanguageStat) render.Table {
	return render.NewTable(records, languageColumns)
}
