package comparison

import (
	"math"
	"sort"

	"ratepulse/pkg/contracts/domain"
)

// Occupancy assumptions for the revenue estimate. The user hotel books a
// higher share of its rooms than a freshly scraped competitor list does.
const (
	UserOccupancy       = 0.85
	CompetitorOccupancy = 0.80
)

// EntityRates carries one entity's priced rows for the revenue ranking
type EntityRates struct {
	Name  string
	Rows  []domain.PricedRow
	Stars int
}

// RevenueRanking estimates occupancy-weighted revenue per hotel and ranks
// the user hotel against its competitors, highest revenue first. Entities
// without any priced rows are left out rather than ranked at zero.
func RevenueRanking(userName string, userRows []domain.PricedRow, competitors []EntityRates) domain.RevenueStanding {
	var ranking []domain.RevenueEstimate

	if avg, ok := meanPrice(userRows); ok {
		ranking = append(ranking, domain.RevenueEstimate{
			Hotel:     userName,
			Revenue:   math.Round(avg * UserOccupancy),
			AvgPrice:  math.Round(avg*100) / 100,
			Occupancy: UserOccupancy,
			IsUser:    true,
		})
	}

	for _, competitor := range competitors {
		avg, ok := meanPrice(competitor.Rows)
		if !ok {
			continue
		}
		ranking = append(ranking, domain.RevenueEstimate{
			Hotel:     competitor.Name,
			Revenue:   math.Round(avg * CompetitorOccupancy),
			AvgPrice:  math.Round(avg*100) / 100,
			Occupancy: CompetitorOccupancy,
		})
	}

	// Stable sort keeps input order between equal revenues, matching the
	// first-occurrence tie handling used everywhere else.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})

	standing := domain.RevenueStanding{
		Ranking:     ranking,
		TotalHotels: len(ranking),
	}

	var peerSum float64
	peerCount := 0
	for i, estimate := range ranking {
		if estimate.IsUser {
			standing.Position = i + 1
			continue
		}
		peerSum += estimate.Revenue
		peerCount++
	}
	if standing.Position > 0 && peerCount > 0 {
		userRevenue := ranking[standing.Position-1].Revenue
		delta := userRevenue - peerSum/float64(peerCount)
		standing.VsPeers = &delta
	}

	return standing
}

func meanPrice(rows []domain.PricedRow) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, row := range rows {
		sum += row.Price
	}
	return sum / float64(len(rows)), true
}
