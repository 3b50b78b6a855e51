package fixtures

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// WorldSchema creates the subset of the "world" sample database the reports
// read. Column names follow the MySQL sample database.
const WorldSchema = `
CREATE TABLE country (
    Code       TEXT    NOT NULL PRIMARY KEY,
    Name       TEXT    NOT NULL,
    Continent  TEXT    NOT NULL,
    Region     TEXT    NOT NULL,
    Population INTEGER NOT NULL DEFAULT 0,
    Capital    INTEGER NULL
);
CREATE TABLE city (
    ID          INTEGER NOT NULL PRIMARY KEY,
    Name        TEXT    NOT NULL,
    CountryCode TEXT    NOT NULL,
    District    TEXT    NOT NULL,
    Population  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE countrylanguage (
    CountryCode TEXT NOT NULL,
    Language    TEXT NOT NULL,
    IsOfficial  TEXT NOT NULL DEFAULT 'F',
    Percentage  REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (CountryCode, Language)
);`

// CountryRow is one seeded country. Capital is 0 when the country has none.
type CountryRow struct {
	Code       string
	Name       string
	Continent  string
	Region     string
	Population int64
	Capital    int64
}

// CityRow is one seeded city.
type CityRow struct {
	ID          int64
	Name        string
	CountryCode string
	District    string
	Population  int64
}

// LanguageRow is one seeded country language.
type LanguageRow struct {
	CountryCode string
	Language    string
	Percentage  float64
}

// Countries are the seeded countries, figures taken from the sample database.
var Countries = []CountryRow{
	{"CHN", "China", "Asia", "Eastern Asia", 1277558000, 1891},
	{"IND", "India", "Asia", "Southern and Central Asia", 1013662000, 1109},
	{"JPN", "Japan", "Asia", "Eastern Asia", 126714000, 1532},
	{"DEU", "Germany", "Europe", "Western Europe", 82164700, 3068},
	{"GBR", "United Kingdom", "Europe", "British Islands", 59623400, 456},
	{"FRA", "France", "Europe", "Western Europe", 59225700, 2974},
	{"ESP", "Spain", "Europe", "Southern Europe", 39441700, 653},
	{"USA", "United States", "North America", "North America", 278357000, 3813},
	{"MEX", "Mexico", "North America", "Central America", 98881000, 2515},
	{"EGY", "Egypt", "Africa", "Northern Africa", 68470000, 608},
	{"ATA", "Antarctica", "Antarctica", "Antarctica", 0, 0},
	{"AFG", "Afghanistan", "Asia", "Southern and Central Asia", 22720000, 1},
}

// Cities are the seeded cities.
var Cities = []CityRow{
	{1, "Kabul", "AFG", "Kabol", 1780000},
	{2, "Qandahar", "AFG", "Qandahar", 237500},
	{1891, "Peking", "CHN", "Peking", 7472000},
	{1890, "Shanghai", "CHN", "Shanghai", 9696300},
	{1109, "New Delhi", "IND", "Delhi", 301297},
	{1024, "Mumbai (Bombay)", "IND", "Maharashtra", 10500000},
	{1532, "Tokyo", "JPN", "Tokyo-to", 7980230},
	{3068, "Berlin", "DEU", "Berliini", 3386667},
	{3069, "Hamburg", "DEU", "Hamburg", 1704735},
	{456, "London", "GBR", "England", 7285000},
	{457, "Birmingham", "GBR", "England", 1013000},
	{2974, "Paris", "FRA", "Île-de-France", 2125246},
	{653, "Madrid", "ESP", "Madrid", 2879052},
	{3793, "New York", "USA", "New York", 8008278},
	{3794, "Los Angeles", "USA", "California", 3694820},
	{3813, "Washington", "USA", "District of Columbia", 572059},
	{2515, "Ciudad de México", "MEX", "Distrito Federal", 8591309},
	{608, "Cairo", "EGY", "Kairo", 6789479},
}

// Languages are the seeded country languages.
var Languages = []LanguageRow{
	{"CHN", "Chinese", 92.0},
	{"IND", "Hindi", 39.9},
	{"USA", "English", 86.2},
	{"USA", "Spanish", 7.5},
	{"GBR", "English", 97.3},
	{"MEX", "Spanish", 92.1},
	{"ESP", "Spanish", 74.4},
	{"EGY", "Arabic", 98.8},
	{"DEU", "German", 91.3},
	{"FRA", "French", 93.6},
	{"JPN", "Japanese", 99.1},
	{"AFG", "Pashtu", 52.4},
}

// WorldPopulation returns the sum of all seeded country populations.
func WorldPopulation() int64 {
	var total int64
	for _, c := range Countries {
		total += c.Population
	}
	return total
}

// LoadWorld creates the schema in db and inserts the seed rows.
func LoadWorld(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, WorldSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, c := range Countries {
		var capital any
		if c.Capital != 0 {
			capital = c.Capital
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO country (Code, Name, Continent, Region, Population, Capital) VALUES (?, ?, ?, ?, ?, ?)`,
			c.Code, c.Name, c.Continent, c.Region, c.Population, capital); err != nil {
			return fmt.Errorf("insert country %s: %w", c.Code, err)
		}
	}
	for _, c := range Cities {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO city (ID, Name, CountryCode, District, Population) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.CountryCode, c.District, c.Population); err != nil {
			return fmt.Errorf("insert city %s: %w", c.Name, err)
		}
	}
	for _, l := range Languages {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO countrylanguage (CountryCode, Language, Percentage) VALUES (?, ?, ?)`,
			l.CountryCode, l.Language, l.Percentage); err != nil {
			return fmt.Errorf("insert language %s/%s: %w", l.CountryCode, l.Language, err)
		}
	}
	return nil
}

// OpenWorldDB returns an in-memory SQLite database seeded with the world
// fixture. It is closed when the test ends.
func OpenWorldDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := LoadWorld(context.Background(), db); err != nil {
		t.Fatalf("load world fixture: %v", err)
	}
	return db
}
