// Package comparison aggregates normalized price rows into the per-room
// comparison, market position, and revenue standing views. Everything here
// is a pure computation over already-materialized rows; callers own any
// concurrency and any fallback behavior for empty inputs.
package comparison

import (
	"sort"
	"strconv"
	"strings"

	"ratepulse/pkg/contracts/domain"
)

// Filters restricts the comparison. Zero values mean "no restriction".
type Filters struct {
	// Stars keeps only competitors with a matching star rating. It arrives
	// as the UI sends it ("4", "4 Stars", "All"); the comparison is on the
	// parsed integer. EntityStars supplies each competitor's rating.
	Stars       string
	EntityStars map[string]int

	// RoomType restricts the output to a single canonical category.
	RoomType domain.RoomCategory
}

// sideStats accumulates one side's prices for a room category
type sideStats struct {
	sum   float64
	count int
}

func (s *sideStats) add(price float64) {
	s.sum += price
	s.count++
}

func (s *sideStats) mean() *float64 {
	if s.count == 0 {
		return nil
	}
	m := s.sum / float64(s.count)
	return &m
}

// Compare groups priced rows by canonical room category and produces one
// comparison row per category present on either side. A category missing on
// one side keeps a nil price for that side; it is never reported as zero.
func Compare(myRows, competitorRows []domain.PricedRow, f Filters) []domain.ComparisonRow {
	wantStars, filterStars := ParseStars(f.Stars)

	mine := make(map[domain.RoomCategory]*sideStats)
	theirs := make(map[domain.RoomCategory]*sideStats)
	competitorPrices := make(map[domain.RoomCategory][]float64)

	for _, row := range myRows {
		if f.RoomType != "" && row.Category != f.RoomType {
			continue
		}
		stat := mine[row.Category]
		if stat == nil {
			stat = &sideStats{}
			mine[row.Category] = stat
		}
		stat.add(row.Price)
	}
	for _, row := range competitorRows {
		if f.RoomType != "" && row.Category != f.RoomType {
			continue
		}
		if filterStars && f.EntityStars[row.Entity] != wantStars {
			continue
		}
		stat := theirs[row.Category]
		if stat == nil {
			stat = &sideStats{}
			theirs[row.Category] = stat
		}
		stat.add(row.Price)
		competitorPrices[row.Category] = append(competitorPrices[row.Category], row.Price)
	}

	var results []domain.ComparisonRow
	for _, category := range domain.RoomCategories() {
		myStat, hasMine := mine[category]
		theirStat, hasTheirs := theirs[category]
		if !hasMine && !hasTheirs {
			continue
		}

		row := domain.ComparisonRow{RoomType: category}
		if hasMine {
			row.MyPrice = myStat.mean()
		}
		if hasTheirs {
			row.CompetitorAvgPrice = theirStat.mean()
			row.CompetitorCount = theirStat.count
		}
		if row.MyPrice != nil {
			pos := Position(*row.MyPrice, competitorPrices[category])
			row.Position = &pos
		}
		if row.MyPrice != nil && row.CompetitorAvgPrice != nil {
			diff := *row.MyPrice - *row.CompetitorAvgPrice
			row.PriceDifference = &diff
			row.PercentageDifference = PercentageDifference(*row.MyPrice, *row.CompetitorAvgPrice)
		}
		results = append(results, row)
	}
	return results
}

// Position ranks myPrice among the competitor prices plus itself, ascending,
// 1-based. Ties take the first occurrence's index; ranks are not averaged.
func Position(myPrice float64, competitorPrices []float64) int {
	all := make([]float64, 0, len(competitorPrices)+1)
	all = append(all, competitorPrices...)
	all = append(all, myPrice)
	sort.Float64s(all)

	for i, p := range all {
		if p == myPrice {
			return i + 1
		}
	}
	return len(all) // unreachable, myPrice is in the slice
}

// PercentageDifference returns (my-avg)/avg*100, or nil when the competitor
// average is not positive.
func PercentageDifference(myPrice, competitorAvg float64) *float64 {
	if competitorAvg <= 0 {
		return nil
	}
	pct := (myPrice - competitorAvg) / competitorAvg * 100
	return &pct
}

// ParseStars extracts the integer star rating from a filter value. "All",
// empty, or unparseable values mean no filtering.
func ParseStars(s string) (int, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return 0, false
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n, true
	}
	// Values like "4 Stars" keep the leading digits.
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
