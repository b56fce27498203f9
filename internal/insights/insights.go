// Package insights derives comparative trend insights over multi-entity
// price histories. All tie-breaking is first-occurrence in input order, and
// a competitor without data is omitted from a result instead of poisoning it
// with NaN.
package insights

import (
	"math"

	"ratepulse/pkg/contracts/domain"
)

// Derive computes the trend insight set over the user's series and the
// competitor series. A nil field means the underlying data was missing; the
// function itself never fails.
func Derive(user domain.HistoricalSeries, competitors []domain.HistoricalSeries) domain.TrendInsights {
	return domain.TrendInsights{
		MostExpensive:  extreme(competitors, func(candidate, best float64) bool { return candidate > best }),
		LeastExpensive: extreme(competitors, func(candidate, best float64) bool { return candidate < best }),
		BiggestGap:     biggestGap(user, competitors),
		MostVolatile:   mostVolatile(competitors),
	}
}

// extreme picks the competitor whose series average wins under better.
// Empty series are skipped; the first occurrence wins ties because better is
// a strict comparison.
func extreme(competitors []domain.HistoricalSeries, better func(candidate, best float64) bool) *domain.PriceExtreme {
	var result *domain.PriceExtreme
	for _, series := range competitors {
		avg, ok := seriesMean(series)
		if !ok {
			continue
		}
		if result == nil || better(avg, result.AvgPrice) {
			result = &domain.PriceExtreme{Name: series.Entity, AvgPrice: avg}
		}
	}
	return result
}

// biggestGap finds the largest absolute user-vs-competitor difference on any
// date both sides have a point for.
func biggestGap(user domain.HistoricalSeries, competitors []domain.HistoricalSeries) *domain.PriceGap {
	userByDate := make(map[string]float64, len(user.Points))
	for _, p := range user.Points {
		userByDate[p.Date] = p.AvgPrice
	}
	if len(userByDate) == 0 {
		return nil
	}

	var result *domain.PriceGap
	for _, series := range competitors {
		for _, p := range series.Points {
			userPrice, shared := userByDate[p.Date]
			if !shared {
				continue
			}
			gap := math.Abs(userPrice - p.AvgPrice)
			if result == nil || gap > result.Gap {
				result = &domain.PriceGap{Name: series.Entity, Date: p.Date, Gap: gap}
			}
		}
	}
	return result
}

// mostVolatile counts strict date-to-date changes per competitor, in series
// order, and picks the highest count.
func mostVolatile(competitors []domain.HistoricalSeries) *domain.Volatility {
	var result *domain.Volatility
	for _, series := range competitors {
		if len(series.Points) == 0 {
			continue
		}
		changes := 0
		for i := 1; i < len(series.Points); i++ {
			if series.Points[i].AvgPrice != series.Points[i-1].AvgPrice {
				changes++
			}
		}
		if result == nil || changes > result.Changes {
			result = &domain.Volatility{Name: series.Entity, Changes: changes}
		}
	}
	return result
}

func seriesMean(series domain.HistoricalSeries) (float64, bool) {
	if len(series.Points) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, p := range series.Points {
		sum += p.AvgPrice
	}
	return sum / float64(len(series.Points)), true
}
