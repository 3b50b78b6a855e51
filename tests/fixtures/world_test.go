package fixtures_test

import (
	"context"
	"testing"

	"world-report/tests/fixtures"
)

func TestOpenWorldDB_SeedsAllTables(t *testing.T) {
	db := fixtures.OpenWorldDB(t)

	counts := map[string]int{
		"country":         len(fixtures.Countries),
		"city":            len(fixtures.Cities),
		"countrylanguage": len(fixtures.Languages),
	}
	for table, want := range counts {
		var got int
		if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&got); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s: expected %d rows, got %d", table, want, got)
		}
	}
}

func TestWorldPopulation(t *testing.T) {
	if got := fixtures.WorldPopulation(); got != 3126817500 {
		t.Errorf("expected 3126817500, got %d", got)
	}
}

func TestCapitalsReferenceSeededCities(t *testing.T) {
	ids := make(map[int64]bool, len(fixtures.Cities))
	for _, c := range fixtures.Cities {
		ids[c.ID] = true
	}
	for _, c := range fixtures.Countries {
		if c.Capital != 0 && !ids[c.Capital] {
			t.Errorf("%s: capital %d is not a seeded city", c.Code, c.Capital)
		}
	}
}
