package entity

import "fmt"

// percentTolerance bounds the rounding drift accepted between the two
// percentages of a breakdown.
const percentTolerance = 0.1

func validatePopulation(field string, v int64) error {
	if v < 0 {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must not be negative, got %d", v)}
	}
	return nil
}

func validatePercent(field string, v float64) error {
	if v < 0 || v > 100 {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be within [0,100], got %g", v)}
	}
	return nil
}

// Validate checks the Country invariants.
func (c *Country) Validate() error {
	return validatePopulation("population", c.Population)
}

// Validate checks the City invariants.
func (c *City) Validate() error {
	return validatePopulation("population", c.Population)
}

// Validate checks the Capital invariants.
func (c *Capital) Validate() error {
	return validatePopulation("population", c.Population)
}

// Validate checks the Population invariants.
func (p *Population) Validate() error {
	return validatePopulation("population", p.Population)
}

// Validate checks the PopulationSum invariants.
// Urban may exceed Total in inconsistent data; that is resolved when the
// breakdown is derived, not rejected here.
func (p *PopulationSum) Validate() error {
	if err := validatePopulation("total", p.Total); err != nil {
		return err
	}
	return validatePopulation("urban", p.Urban)
}

// Validate checks the PopulationBreakdown invariants:
// urban + non-urban equals the total, both percentages are within [0,100]
// and, for a non-empty scope, they add up to 100 within rounding tolerance.
func (p *PopulationBreakdown) Validate() error {
	for field, v := range map[string]int64{"total": p.Total, "urban": p.Urban, "non_urban": p.NonUrban} {
		if err := validatePopulation(field, v); err != nil {
			return err
		}
	}
	if p.Urban+p.NonUrban != p.Total {
		return &ValidationError{
			Field:   "non_urban",
			Message: fmt.Sprintf("urban %d + non-urban %d != total %d", p.Urban, p.NonUrban, p.Total),
		}
	}
	if err := validatePercent("urban_pct", p.UrbanPct); err != nil {
		return err
	}
	if err := validatePercent("non_urban_pct", p.NonUrbanPct); err != nil {
		return err
	}
	if p.Total > 0 {
		if sum := p.UrbanPct + p.NonUrbanPct; sum < 100-percentTolerance || sum > 100+percentTolerance {
			return &ValidationError{Field: "urban_pct", Message: fmt.Sprintf("percentages add up to %g", sum)}
		}
	}
	return nil
}

// Validate checks the LanguageShare invariants.
func (l *LanguageShare) Validate() error {
	if err := validatePopulation("country_population", l.CountryPopulation); err != nil {
		return err
	}
	return validatePercent("percentage", l.Percentage)
}

// Validate checks the LanguageStat invariants.
func (l *LanguageStat) Validate() error {
	if err := validatePopulation("speakers", l.Speakers); err != nil {
		return err
	}
	return validatePercent("world_pct", l.WorldPct)
}
