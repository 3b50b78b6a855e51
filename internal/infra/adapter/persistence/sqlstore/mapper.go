package sqlstore

import "world-report/internal/domain/entity"

// RowMapper converts one result row into one record.
type RowMapper[T any] func(r *Row) (*T, error)

type validator interface{ Validate() error }

// finish returns rec unless the row or the record is invalid.
func finish[P validator](r *Row, rec P) (P, error) {
	var zero P
	if err := r.Err(); err != nil {
		return zero, err
	}
	if err := rec.Validate(); err != nil {
		return zero, err
	}
	return rec, nil
}

func mapCountry(r *Row) (*entity.Country, error) {
	return finish(r, &entity.Country{
		Code:       r.String("Code"),
		Name:       r.String("Name"),
		Continent:  r.String("Continent"),
		Region:     r.String("Region"),
		Population: r.Int64("Population"),
		Capital:    r.String("Capital"),
	})
}

func mapCity(r *Row) (*entity.City, error) {
	return finish(r, &entity.City{
		Name:       r.String("Name"),
		Country:    r.String("Country"),
		District:   r.String("District"),
		Population: r.Int64("Population"),
	})
}

func mapCapital(r *Row) (*entity.Capital, error) {
	return finish(r, &entity.Capital{
		Name:       r.String("Name"),
		Country:    r.String("Country"),
		Population: r.Int64("Population"),
	})
}

func mapPopulationSum(r *Row) (*entity.PopulationSum, error) {
	return finish(r, &entity.PopulationSum{
		Name:  r.String("Name"),
		Total: r.Int64("TotalPopulation"),
		Urban: r.Int64("CityPopulation"),
	})
}

func mapPopulation(r *Row) (*entity.Population, error) {
	return finish(r, &entity.Population{
		Name:       r.String("Name"),
		Population: r.Int64("Population"),
	})
}

func mapLanguageShare(r *Row) (*entity.LanguageShare, error) {
	return finish(r, &entity.LanguageShare{
		Language:          r.String("Language"),
		CountryPopulation: r.Int64("Population"),
		Percentage:        r.Float64("Percentage"),
	})
}
