package services

import (
	"context"
	"log/slog"
	"sort"

	"ratepulse/internal/config"
	"ratepulse/internal/dates"
	apierrors "ratepulse/internal/errors"
	"ratepulse/internal/insights"
	"ratepulse/internal/pricing"
	"ratepulse/pkg/contracts/domain"
)

// InsightResult carries the derived trends plus the per-entity history the
// caller can chart.
type InsightResult struct {
	Trends      domain.TrendInsights      `json:"trends"`
	User        domain.HistoricalSeries   `json:"user"`
	Competitors []domain.HistoricalSeries `json:"competitors"`
}

// InsightService derives pricing trends from the full snapshot history.
type InsightService struct {
	cfg    *config.Config
	store  *SnapshotStore
	logger *slog.Logger
}

// NewInsightService wires the service.
func NewInsightService(cfg *config.Config, store *SnapshotStore, logger *slog.Logger) *InsightService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightService{cfg: cfg, store: store, logger: logger}
}

// Trends builds each entity's dated average-price history and derives the
// trend insights over it.
func (s *InsightService) Trends(ctx context.Context, city string) (*InsightResult, error) {
	snapshots, err := s.store.LoadSnapshots(ctx)
	if err != nil {
		return nil, apierrors.FileSystemError("load snapshots", err)
	}

	if city == "" {
		city = s.cfg.Market.City
	}
	snapshots = filterByCity(snapshots, city)
	if len(snapshots) == 0 {
		return nil, apierrors.ErrNoCompetitors
	}

	var competitors []domain.HistoricalSeries
	for _, snapshot := range snapshots {
		series := snapshotSeries(snapshot)
		if len(series.Points) == 0 {
			continue
		}
		competitors = append(competitors, series)
	}

	userRates, err := s.store.LoadUserRates(ctx)
	if err != nil {
		return nil, apierrors.FileSystemError("load user rates", err)
	}
	user := s.userSeries(userRates)

	trends := insights.Derive(user, competitors)

	s.logger.InfoContext(ctx, "insights derived",
		slog.Int("competitors", len(competitors)),
		slog.Int("user_points", len(user.Points)))

	return &InsightResult{
		Trends:      trends,
		User:        user,
		Competitors: competitors,
	}, nil
}

// snapshotSeries averages a competitor's parseable prices per normalized
// date, producing a date-ascending series.
func snapshotSeries(snapshot domain.CompetitorSnapshot) domain.HistoricalSeries {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for key, entries := range snapshot.Rooms {
		date, ok := dates.Normalize(key)
		if !ok {
			continue
		}
		for _, entry := range entries {
			price, ok := pricing.ParseToken(entry.Token())
			if !ok {
				continue
			}
			sums[date] += price
			counts[date]++
		}
	}

	return domain.HistoricalSeries{
		Entity: snapshot.Name,
		Points: sortedPoints(sums, counts),
	}
}

// userSeries averages the user hotel's rates per check-in date. Records
// without a date cannot be placed on the timeline and are skipped.
func (s *InsightService) userSeries(rates []domain.UserRate) domain.HistoricalSeries {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, rate := range rates {
		if rate.CheckinDate == "" {
			continue
		}
		date, ok := dates.Normalize(rate.CheckinDate)
		if !ok {
			continue
		}
		price, ok := pricing.ParseToken(rate.Price)
		if !ok {
			continue
		}
		sums[date] += price
		counts[date]++
	}

	return domain.HistoricalSeries{
		Entity: s.cfg.Market.UserHotel,
		Points: sortedPoints(sums, counts),
	}
}

func sortedPoints(sums map[string]float64, counts map[string]int) []domain.HistoricalPoint {
	points := make([]domain.HistoricalPoint, 0, len(sums))
	for date, sum := range sums {
		points = append(points, domain.HistoricalPoint{
			Date:     date,
			AvgPrice: sum / float64(counts[date]),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}
