package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratepulse/pkg/contracts/domain"
)

func row(entity string, category domain.RoomCategory, price float64) domain.PricedRow {
	return domain.PricedRow{Entity: entity, Date: "2024-05-01", Category: category, Price: price}
}

func TestCompareSingleCategory(t *testing.T) {
	myRows := []domain.PricedRow{row("mine", domain.RoomDoubleBed, 150)}
	competitorRows := []domain.PricedRow{
		row("a", domain.RoomDoubleBed, 140),
		row("b", domain.RoomDoubleBed, 160),
	}

	results := Compare(myRows, competitorRows, Filters{})
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, domain.RoomDoubleBed, r.RoomType)
	require.NotNil(t, r.MyPrice)
	assert.Equal(t, 150.0, *r.MyPrice)
	require.NotNil(t, r.CompetitorAvgPrice)
	assert.Equal(t, 150.0, *r.CompetitorAvgPrice)
	assert.Equal(t, 2, r.CompetitorCount)
	require.NotNil(t, r.Position)
	assert.Equal(t, 2, *r.Position, "sorted [140 150 160]")
	require.NotNil(t, r.PercentageDifference)
	assert.Equal(t, 0.0, *r.PercentageDifference)
}

func TestCompareMissingSides(t *testing.T) {
	myRows := []domain.PricedRow{row("mine", domain.RoomQueen, 120)}
	competitorRows := []domain.PricedRow{row("a", domain.RoomSuite, 300)}

	results := Compare(myRows, competitorRows, Filters{})
	require.Len(t, results, 2)

	byCategory := map[domain.RoomCategory]domain.ComparisonRow{}
	for _, r := range results {
		byCategory[r.RoomType] = r
	}

	queen := byCategory[domain.RoomQueen]
	require.NotNil(t, queen.MyPrice)
	assert.Nil(t, queen.CompetitorAvgPrice, "absent side is nil, not zero")
	assert.Equal(t, 0, queen.CompetitorCount)
	require.NotNil(t, queen.Position)
	assert.Equal(t, 1, *queen.Position, "alone in the market")
	assert.Nil(t, queen.PercentageDifference)

	suite := byCategory[domain.RoomSuite]
	assert.Nil(t, suite.MyPrice)
	assert.Nil(t, suite.Position, "no position without a user price")
	require.NotNil(t, suite.CompetitorAvgPrice)
	assert.Equal(t, 300.0, *suite.CompetitorAvgPrice)
}

func TestCompareRoomTypeFilter(t *testing.T) {
	myRows := []domain.PricedRow{
		row("mine", domain.RoomQueen, 120),
		row("mine", domain.RoomSuite, 280),
	}
	competitorRows := []domain.PricedRow{
		row("a", domain.RoomQueen, 110),
		row("a", domain.RoomSuite, 290),
	}

	results := Compare(myRows, competitorRows, Filters{RoomType: domain.RoomSuite})
	require.Len(t, results, 1)
	assert.Equal(t, domain.RoomSuite, results[0].RoomType)
}

func TestCompareStarsFilter(t *testing.T) {
	myRows := []domain.PricedRow{row("mine", domain.RoomStandard, 150)}
	competitorRows := []domain.PricedRow{
		row("four-star", domain.RoomStandard, 200),
		row("three-star", domain.RoomStandard, 100),
	}
	stars := map[string]int{"four-star": 4, "three-star": 3}

	results := Compare(myRows, competitorRows, Filters{Stars: "4", EntityStars: stars})
	require.Len(t, results, 1)
	require.NotNil(t, results[0].CompetitorAvgPrice)
	assert.Equal(t, 200.0, *results[0].CompetitorAvgPrice)
	assert.Equal(t, 1, results[0].CompetitorCount)

	// "All" disables the filter.
	results = Compare(myRows, competitorRows, Filters{Stars: "All", EntityStars: stars})
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].CompetitorCount)
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name        string
		myPrice     float64
		competitors []float64
		want        int
	}{
		{name: "middle of the pack", myPrice: 100, competitors: []float64{80, 90, 110}, want: 3},
		{name: "cheapest", myPrice: 50, competitors: []float64{80, 90}, want: 1},
		{name: "most expensive", myPrice: 200, competitors: []float64{80, 90}, want: 3},
		{name: "no competitors", myPrice: 100, competitors: nil, want: 1},
		{name: "tie takes first occurrence", myPrice: 90, competitors: []float64{80, 90, 110}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Position(tt.myPrice, tt.competitors))
		})
	}
}

func TestPercentageDifference(t *testing.T) {
	pct := PercentageDifference(110, 100)
	require.NotNil(t, pct)
	assert.InDelta(t, 10.0, *pct, 1e-9)

	pct = PercentageDifference(90, 100)
	require.NotNil(t, pct)
	assert.InDelta(t, -10.0, *pct, 1e-9)

	assert.Nil(t, PercentageDifference(100, 0), "non-positive average")
	assert.Nil(t, PercentageDifference(100, -5))
}

func TestParseStars(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{input: "4", want: 4, ok: true},
		{input: "4 Stars", want: 4, ok: true},
		{input: " 5 ", want: 5, ok: true},
		{input: "All", ok: false},
		{input: "", ok: false},
		{input: "luxury", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseStars(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestRevenueRanking(t *testing.T) {
	userRows := []domain.PricedRow{
		row("mine", domain.RoomStandard, 100),
		row("mine", domain.RoomQueen, 200),
	}
	competitors := []EntityRates{
		{Name: "Grand Plaza", Rows: []domain.PricedRow{row("Grand Plaza", domain.RoomStandard, 250)}},
		{Name: "Riverside Inn", Rows: []domain.PricedRow{row("Riverside Inn", domain.RoomStandard, 100)}},
		{Name: "No Data Hotel"},
	}

	standing := RevenueRanking("Our Hotel", userRows, competitors)

	// User avg 150 * 0.85 = 127.5 -> 128 (rounded).
	// Grand Plaza 250 * 0.80 = 200, Riverside 100 * 0.80 = 80.
	require.Equal(t, 3, standing.TotalHotels, "competitor without rows is excluded")
	assert.Equal(t, "Grand Plaza", standing.Ranking[0].Hotel)
	assert.Equal(t, "Our Hotel", standing.Ranking[1].Hotel)
	assert.Equal(t, 128.0, standing.Ranking[1].Revenue)
	assert.Equal(t, 2, standing.Position)

	require.NotNil(t, standing.VsPeers)
	// Peer average (200+80)/2 = 140; user 128.
	assert.InDelta(t, -12.0, *standing.VsPeers, 1e-9)
}

func TestRevenueRankingNoUserData(t *testing.T) {
	standing := RevenueRanking("Our Hotel", nil, []EntityRates{
		{Name: "Grand Plaza", Rows: []domain.PricedRow{row("Grand Plaza", domain.RoomStandard, 250)}},
	})
	assert.Equal(t, 0, standing.Position)
	assert.Nil(t, standing.VsPeers)
	assert.Equal(t, 1, standing.TotalHotels)
}
