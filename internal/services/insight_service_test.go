package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "ratepulse/internal/errors"
)

func TestTrends(t *testing.T) {
	cfg := testConfig(t)
	writeSnapshot(t, cfg, "steady.json", `{
		"name": "Steady Hotel",
		"rooms": {
			"2024-05-01": [{"room_type": "Standard", "price": 100}],
			"2024-05-02": [{"room_type": "Standard", "price": 100}]
		}
	}`)
	writeSnapshot(t, cfg, "volatile.json", `{
		"name": "Volatile Hotel",
		"rooms": {
			"2024-05-01": [{"room_type": "Standard", "price": 150}],
			"2024-05-02": [{"room_type": "Standard", "price": 190}]
		}
	}`)
	writeUserRates(t, cfg, `[
		{"hotel": "Our Hotel", "room_type": "Standard", "price": 120, "checkin_date": "2024-05-01"},
		{"hotel": "Our Hotel", "room_type": "Standard", "price": 120, "checkin_date": "2024-05-02"}
	]`)

	store := NewSnapshotStore(cfg.Paths.SnapshotsDir, cfg.Paths.UserRatesFile, discardLogger())
	svc := NewInsightService(cfg, store, discardLogger())

	result, err := svc.Trends(context.Background(), "")
	require.NoError(t, err)

	require.NotNil(t, result.Trends.MostExpensive)
	assert.Equal(t, "Volatile Hotel", result.Trends.MostExpensive.Name)
	assert.InDelta(t, 170, result.Trends.MostExpensive.AvgPrice, 0.001)

	require.NotNil(t, result.Trends.LeastExpensive)
	assert.Equal(t, "Steady Hotel", result.Trends.LeastExpensive.Name)

	require.NotNil(t, result.Trends.MostVolatile)
	assert.Equal(t, "Volatile Hotel", result.Trends.MostVolatile.Name)
	assert.Equal(t, 1, result.Trends.MostVolatile.Changes)

	// Biggest gap: |120-190| = 70 on 2024-05-02.
	require.NotNil(t, result.Trends.BiggestGap)
	assert.Equal(t, "Volatile Hotel", result.Trends.BiggestGap.Name)
	assert.Equal(t, "2024-05-02", result.Trends.BiggestGap.Date)
	assert.InDelta(t, 70, result.Trends.BiggestGap.Gap, 0.001)

	require.Len(t, result.Competitors, 2)
	assert.Len(t, result.User.Points, 2)
}

func TestTrends_MixedDateKeyFormats(t *testing.T) {
	cfg := testConfig(t)
	writeSnapshot(t, cfg, "mixed.json", `{
		"name": "Mixed Keys Hotel",
		"rooms": {
			"05/01/2024": [{"room_type": "Standard", "price": 100}],
			"2024-05-02": [{"room_type": "Standard", "price": 200}]
		}
	}`)

	store := NewSnapshotStore(cfg.Paths.SnapshotsDir, cfg.Paths.UserRatesFile, discardLogger())
	svc := NewInsightService(cfg, store, discardLogger())

	result, err := svc.Trends(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, result.Competitors, 1)
	points := result.Competitors[0].Points
	require.Len(t, points, 2)
	assert.Equal(t, "2024-05-01", points[0].Date)
	assert.Equal(t, "2024-05-02", points[1].Date)
}

func TestTrends_NoSnapshots(t *testing.T) {
	cfg := testConfig(t)

	store := NewSnapshotStore(cfg.Paths.SnapshotsDir, cfg.Paths.UserRatesFile, discardLogger())
	svc := NewInsightService(cfg, store, discardLogger())

	_, err := svc.Trends(context.Background(), "")
	assert.ErrorIs(t, err, apierrors.ErrNoCompetitors)
}
