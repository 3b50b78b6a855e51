// Package query selects the SQL statement and bind parameters for every
// report variant: an entity family, a scope level and a cardinality.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedVariant is returned when a family does not support the
// requested scope or cardinality.
var ErrUnsupportedVariant = errors.New("unsupported report variant")

// Family identifies the kind of record a report produces.
type Family int

const (
	FamilyCountry Family = iota + 1
	FamilyCity
	FamilyCapital
	FamilyPopulationBreakdown
	FamilyPopulation
	FamilyLanguage
)

var familyNames = map[Family]string{
	FamilyCountry:             "country",
	FamilyCity:                "city",
	FamilyCapital:             "capital",
	FamilyPopulationBreakdown: "breakdown",
	FamilyPopulation:          "population",
	FamilyLanguage:            "language",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// ParseFamily parses a family name as printed by Family.String.
func ParseFamily(s string) (Family, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range familyNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown family %q", ErrUnsupportedVariant, s)
}

// Scope is the hierarchical filter level of a report.
type Scope int

const (
	ScopeWorld Scope = iota + 1
	ScopeContinent
	ScopeRegion
	ScopeCountry
	ScopeDistrict
	ScopeCity
)

var scopeNames = map[Scope]string{
	ScopeWorld:     "world",
	ScopeContinent: "continent",
	ScopeRegion:    "region",
	ScopeCountry:   "country",
	ScopeDistrict:  "district",
	ScopeCity:      "city",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scope(%d)", int(s))
}

// Filtered reports whether the scope binds a filter value.
func (s Scope) Filtered() bool {
	return s != ScopeWorld
}

// ParseScope parses a scope name as printed by Scope.String.
func ParseScope(s string) (Scope, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for sc, name := range scopeNames {
		if name == s {
			return sc, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown scope %q", ErrUnsupportedVariant, s)
}

// Cardinality selects all matching rows or the top N of them.
// The zero value means all rows.
type Cardinality struct {
	top bool
	n   int
}

// All returns the unbounded cardinality.
func All() Cardinality { return Cardinality{} }

// Top returns a cardinality bounded to n rows. n is passed to the store
// as is; zero and negative values are not rejected here.
func Top(n int) Cardinality { return Cardinality{top: true, n: n} }

// IsTop reports whether the cardinality carries a row limit.
func (c Cardinality) IsTop() bool { return c.top }

// Limit returns the row limit of a top-N cardinality.
func (c Cardinality) Limit() int { return c.n }

func (c Cardinality) String() string {
	if c.top {
		return fmt.Sprintf("top%d", c.n)
	}
	return "all"
}

// Request fully describes one report variant.
type Request struct {
	Family      Family
	Scope       Scope
	Filter      string
	Cardinality Cardinality
}

// Statement is a SQL template with its positional bind values, in
// placeholder order.
type Statement struct {
	SQL  string
	Args []any
}
