package report

import (
	"math"
	"sort"

	"world-report/internal/domain/entity"
)

// Breakdown derives the urban/non-urban split of one scope. City populations
// exceeding the scope total are clamped to the total; clamped reports whether
// that happened. A zero total yields 0% for both shares.
func Breakdown(sum *entity.PopulationSum) (b *entity.PopulationBreakdown, clamped bool) {
	total := max(sum.Total, 0)
	urban := max(sum.Urban, 0)
	if urban > total {
		urban = total
		clamped = true
	}

	b = &entity.PopulationBreakdown{
		Name:     sum.Name,
		Total:    total,
		Urban:    urban,
		NonUrban: total - urban,
	}
	if total > 0 {
		b.UrbanPct = 100 * float64(b.Urban) / float64(total)
		b.NonUrbanPct = 100 * float64(b.NonUrban) / float64(total)
	}
	return b, clamped
}

// EstimateSpeakers sums, per language, country population weighted by the
// share of the country speaking it. Each country's contribution is rounded to
// the nearest integer before summing; the world share is taken from the
// unrounded sum, rounded to two decimals within [0,100]. Results are ordered
// by speakers descending, then by language name.
func EstimateSpeakers(shares []*entity.LanguageShare, worldTotal int64) []*entity.LanguageStat {
	type tally struct {
		speakers int64
		exact    float64
	}
	sums := make(map[string]*tally)
	order := make([]string, 0)
	for _, s := range shares {
		if s == nil {
			continue
		}
		t, seen := sums[s.Language]
		if !seen {
			t = &tally{}
			sums[s.Language] = t
			order = append(order, s.Language)
		}
		term := float64(s.CountryPopulation) * s.Percentage / 100
		t.speakers += int64(math.Round(term))
		t.exact += term
	}

	stats := make([]*entity.LanguageStat, 0, len(order))
	for _, lang := range order {
		t := sums[lang]
		stats = append(stats, &entity.LanguageStat{
			Language: lang,
			Speakers: t.speakers,
			WorldPct: worldShare(t.exact, worldTotal),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Speakers != stats[j].Speakers {
			return stats[i].Speakers > stats[j].Speakers
		}
		return stats[i].Language < stats[j].Language
	})
	return stats
}

func worldShare(speakers float64, worldTotal int64) float64 {
	if worldTotal <= 0 {
		return 0
	}
	pct := math.Round(10000*speakers/float64(worldTotal)) / 100
	return min(max(pct, 0), 100)
}
