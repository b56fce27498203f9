package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ratepulse/internal/comparison"
	"ratepulse/internal/config"
	"ratepulse/internal/dates"
	apierrors "ratepulse/internal/errors"
	"ratepulse/internal/infrastructure"
	"ratepulse/internal/pricing"
	"ratepulse/internal/rooms"
	"ratepulse/pkg/contracts/domain"
)

// ComparisonOptions restricts a comparison run. Zero values mean "use the
// configured defaults" for the date and city, and "no restriction" for
// stars and room type.
type ComparisonOptions struct {
	// Date is an explicit target day in any accepted key format. Empty
	// means "today" in the business timezone, with a latest-snapshot
	// fallback when today has no data yet.
	Date     string
	Stars    string
	RoomType string
	City     string
}

// ComparisonResult is the assembled comparison table plus the display
// context the caller needs to render it.
type ComparisonResult struct {
	Date            string                 `json:"date"`
	Rows            []domain.ComparisonRow `json:"rows"`
	CompetitorCount int                    `json:"competitor_count"`
	Currency        string                 `json:"currency"`
	ExchangeRate    float64                `json:"exchange_rate"`
}

// ComparisonService builds comparison tables and revenue rankings from the
// scraper's snapshot hand-off.
type ComparisonService struct {
	cfg      *config.Config
	store    *SnapshotStore
	resolver *dates.Resolver
	metrics  *infrastructure.ComparisonMetrics
	logger   *slog.Logger
}

// NewComparisonService wires the service. metrics may be nil when telemetry
// is disabled.
func NewComparisonService(cfg *config.Config, store *SnapshotStore, resolver *dates.Resolver, metrics *infrastructure.ComparisonMetrics, logger *slog.Logger) *ComparisonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComparisonService{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
	}
}

// BuildComparison assembles the per-room-category comparison between the
// user hotel and the competitor set for the requested day.
func (s *ComparisonService) BuildComparison(ctx context.Context, opts ComparisonOptions) (*ComparisonResult, error) {
	start := time.Now()

	snapshots, userRates, err := s.loadInputs(ctx, opts.City)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SnapshotsLoaded.Add(ctx, int64(len(snapshots)))
	}

	candidates, targetDate, explicit, err := s.candidates(opts.Date)
	if err != nil {
		return nil, err
	}

	competitorRows, entityStars, matched := s.competitorRows(ctx, snapshots, candidates, !explicit)
	if matched == 0 {
		if explicit {
			return nil, apierrors.ErrNoSnapshotForDay
		}
		return nil, apierrors.ErrNoCompetitors
	}

	myRows := s.userRows(ctx, userRates, candidates)

	filters := comparison.Filters{
		Stars:       opts.Stars,
		EntityStars: entityStars,
	}
	if category, ok := roomFilter(opts.RoomType); ok {
		filters.RoomType = category
	}

	rows := comparison.Compare(myRows, competitorRows, filters)

	result := &ComparisonResult{
		Date:            targetDate,
		Rows:            rows,
		CompetitorCount: matched,
		Currency:        s.cfg.Market.Currency,
		ExchangeRate:    s.cfg.Market.ExchangeRate,
	}

	infrastructure.RecordComparison(ctx, s.metrics, time.Since(start), len(rows), true)
	s.logger.InfoContext(ctx, "comparison built",
		slog.String("date", targetDate),
		slog.Int("competitors", matched),
		slog.Int("rows", len(rows)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

// RevenueRanking estimates occupancy-weighted revenue for the user hotel
// and every competitor with data on the target day, ranked highest first.
func (s *ComparisonService) RevenueRanking(ctx context.Context, opts ComparisonOptions) (*domain.RevenueStanding, error) {
	snapshots, userRates, err := s.loadInputs(ctx, opts.City)
	if err != nil {
		return nil, err
	}

	candidates, _, explicit, err := s.candidates(opts.Date)
	if err != nil {
		return nil, err
	}

	var competitors []comparison.EntityRates
	for _, snapshot := range snapshots {
		entries, resolvedDate, ok := s.resolveEntries(snapshot, candidates, !explicit)
		if !ok {
			continue
		}
		rows := s.entryRows(ctx, snapshot.Name, resolvedDate, entries)
		if len(rows) == 0 {
			continue
		}
		competitors = append(competitors, comparison.EntityRates{
			Name:  snapshot.Name,
			Rows:  rows,
			Stars: snapshot.Stars,
		})
	}

	if len(competitors) == 0 {
		return nil, apierrors.ErrNoCompetitors
	}

	myRows := s.userRows(ctx, userRates, candidates)
	if len(myRows) == 0 {
		return nil, apierrors.ErrNoUserRates
	}

	standing := comparison.RevenueRanking(s.cfg.Market.UserHotel, myRows, competitors)
	return &standing, nil
}

// loadInputs reads snapshots and user rates and applies the city filter.
func (s *ComparisonService) loadInputs(ctx context.Context, city string) ([]domain.CompetitorSnapshot, []domain.UserRate, error) {
	snapshots, err := s.store.LoadSnapshots(ctx)
	if err != nil {
		return nil, nil, apierrors.FileSystemError("load snapshots", err)
	}

	if city == "" {
		city = s.cfg.Market.City
	}
	snapshots = filterByCity(snapshots, city)
	if len(snapshots) == 0 {
		return nil, nil, apierrors.ErrNoCompetitors
	}

	userRates, err := s.store.LoadUserRates(ctx)
	if err != nil {
		return nil, nil, apierrors.FileSystemError("load user rates", err)
	}

	return snapshots, userRates, nil
}

// candidates resolves the target day into the ordered candidate key list.
// An explicit date narrows resolution to that one day and disables the
// latest-snapshot fallback.
func (s *ComparisonService) candidates(date string) (candidates []string, target string, explicit bool, err error) {
	if date == "" {
		return s.resolver.CandidateDates(), s.resolver.CanonicalToday(), false, nil
	}

	normalized, ok := dates.Normalize(date)
	if !ok {
		return nil, "", false, apierrors.ErrValidation("date", "unrecognized date format")
	}
	return []string{normalized}, normalized, true, nil
}

// competitorRows resolves each snapshot to its day's entries and converts
// them to priced rows. The returned count is the number of competitors
// that contributed at least one parseable price.
func (s *ComparisonService) competitorRows(ctx context.Context, snapshots []domain.CompetitorSnapshot, candidates []string, allowLatest bool) ([]domain.PricedRow, map[string]int, int) {
	var rows []domain.PricedRow
	entityStars := make(map[string]int, len(snapshots))
	matched := 0

	for _, snapshot := range snapshots {
		entries, resolvedDate, ok := s.resolveEntries(snapshot, candidates, allowLatest)
		if !ok {
			s.logger.DebugContext(ctx, "no snapshot day for competitor",
				slog.String("competitor", snapshot.Name))
			continue
		}

		priced := s.entryRows(ctx, snapshot.Name, resolvedDate, entries)
		if len(priced) == 0 {
			continue
		}

		rows = append(rows, priced...)
		entityStars[snapshot.Name] = snapshot.Stars
		matched++
	}

	return rows, entityStars, matched
}

// resolveEntries finds the room entries for the target day, falling back to
// the competitor's most recent day when allowed.
func (s *ComparisonService) resolveEntries(snapshot domain.CompetitorSnapshot, candidates []string, allowLatest bool) ([]domain.RoomEntry, string, bool) {
	if entries, matched, ok := dates.Resolve(snapshot.Rooms, candidates); ok {
		return entries, matched, true
	}
	if allowLatest {
		if key, entries, ok := dates.Latest(snapshot.Rooms); ok {
			date := key
			if normalized, ok := dates.Normalize(key); ok {
				date = normalized
			}
			return entries, date, true
		}
	}
	return nil, "", false
}

// entryRows normalizes raw room entries into priced rows, skipping offers
// whose price cannot be parsed.
func (s *ComparisonService) entryRows(ctx context.Context, entity, date string, entries []domain.RoomEntry) []domain.PricedRow {
	var rows []domain.PricedRow
	for _, entry := range entries {
		price, ok := pricing.ParseToken(entry.Token())
		if !ok {
			if s.metrics != nil {
				s.metrics.PriceParseFailures.Add(ctx, 1)
			}
			s.logger.DebugContext(ctx, "unparseable price skipped",
				slog.String("entity", entity),
				slog.String("room_type", entry.RoomType))
			continue
		}

		rows = append(rows, domain.PricedRow{
			Entity:   entity,
			Date:     date,
			Category: rooms.Canonicalize(entry.RoomType),
			Price:    price,
		})
	}
	return rows
}

// userRows converts the user hotel's rate records for the target day.
// Records without a check-in date apply to every day.
func (s *ComparisonService) userRows(ctx context.Context, rates []domain.UserRate, candidates []string) []domain.PricedRow {
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		candidateSet[c] = struct{}{}
	}

	var rows []domain.PricedRow
	for _, rate := range rates {
		date := candidates[0]
		if rate.CheckinDate != "" {
			normalized, ok := dates.Normalize(rate.CheckinDate)
			if !ok {
				continue
			}
			if _, match := candidateSet[normalized]; !match {
				continue
			}
			date = normalized
		}

		price, ok := pricing.ParseToken(rate.Price)
		if !ok {
			if s.metrics != nil {
				s.metrics.PriceParseFailures.Add(ctx, 1)
			}
			continue
		}

		rows = append(rows, domain.PricedRow{
			Entity:   s.cfg.Market.UserHotel,
			Date:     date,
			Category: rooms.Canonicalize(rate.RoomType),
			Price:    price,
		})
	}
	return rows
}

// filterByCity keeps snapshots whose city contains the requested city,
// case-insensitively, so "Tijuana" also matches "Tijuana, BC". Snapshots
// without a city are kept deliberately: older scraper versions never set the
// field and dropping them would silently empty the comparison.
func filterByCity(snapshots []domain.CompetitorSnapshot, city string) []domain.CompetitorSnapshot {
	if city == "" {
		return snapshots
	}

	want := strings.ToLower(city)
	var filtered []domain.CompetitorSnapshot
	for _, snapshot := range snapshots {
		if snapshot.City == "" || strings.Contains(strings.ToLower(snapshot.City), want) {
			filtered = append(filtered, snapshot)
		}
	}
	return filtered
}

// roomFilter maps a requested room type to its canonical category. "All"
// and empty mean no restriction.
func roomFilter(roomType string) (domain.RoomCategory, bool) {
	trimmed := strings.TrimSpace(roomType)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return "", false
	}
	return rooms.Canonicalize(trimmed), true
}
