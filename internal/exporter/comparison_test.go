package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ratepulse/internal/config"
	"ratepulse/pkg/contracts/domain"
)

func testPaths(t *testing.T) *config.PathsConfig {
	t.Helper()
	base := t.TempDir()
	return &config.PathsConfig{
		DataDir:    base,
		ReportsDir: filepath.Join(base, "reports"),
		LogsDir:    filepath.Join(base, "logs"),
	}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func sampleRows() []domain.ComparisonRow {
	return []domain.ComparisonRow{
		{
			RoomType:             domain.RoomStandard,
			MyPrice:              floatPtr(150),
			CompetitorAvgPrice:   floatPtr(150),
			CompetitorCount:      2,
			Position:             intPtr(2),
			PriceDifference:      floatPtr(0),
			PercentageDifference: floatPtr(0),
		},
		{
			RoomType:           domain.RoomSuite,
			CompetitorAvgPrice: floatPtr(2600.5),
			CompetitorCount:    1,
		},
	}
}

func TestExportComparisonCSV(t *testing.T) {
	e := NewComparisonExporter(testPaths(t))

	path, err := e.ExportComparisonCSV("2024-05-02", sampleRows())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"), "expected UTF-8 BOM")
	assert.Contains(t, content, "Room Type,My Price,Competitor Avg")
	assert.Contains(t, content, "Standard,150.00,150.00,2,2,0.00,0.00")
	// Missing my-price side stays blank, never 0.
	assert.Contains(t, content, "Suite,,2600.50,1,,,")
}

func TestExportComparisonXLSX(t *testing.T) {
	e := NewComparisonExporter(testPaths(t))

	path, err := e.ExportComparisonXLSX("2024-05-02", sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Comparison", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Room Type", header)

	roomType, err := f.GetCellValue("Comparison", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Standard", roomType)

	// Suite row has no my-price; the cell is empty.
	myPrice, err := f.GetCellValue("Comparison", "B3")
	require.NoError(t, err)
	assert.Empty(t, myPrice)
}

func TestExportInsightsCSV(t *testing.T) {
	e := NewComparisonExporter(testPaths(t))

	trends := domain.TrendInsights{
		MostExpensive:  &domain.PriceExtreme{Name: "Hotel Lucerna", AvgPrice: 2100},
		LeastExpensive: &domain.PriceExtreme{Name: "Hotel Caesars", AvgPrice: 900},
		BiggestGap:     &domain.PriceGap{Name: "Hotel Lucerna", Date: "2024-05-02", Gap: 600},
		MostVolatile:   &domain.Volatility{Name: "Hotel Caesars", Changes: 4},
	}

	path, err := e.ExportInsightsCSV("2024-05-02", trends)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "Most Expensive,Hotel Lucerna,2100.00")
	assert.Contains(t, content, "Biggest Gap,Hotel Lucerna,600.00,2024-05-02")
	assert.Contains(t, content, "Most Volatile,Hotel Caesars,4 changes")
}

func TestExportRevenueCSV(t *testing.T) {
	e := NewComparisonExporter(testPaths(t))

	standing := domain.RevenueStanding{
		Ranking: []domain.RevenueEstimate{
			{Hotel: "Hotel Lucerna", Revenue: 160, AvgPrice: 200, Occupancy: 0.80},
			{Hotel: "Our Hotel", Revenue: 85, AvgPrice: 100, Occupancy: 0.85, IsUser: true},
		},
		Position:    2,
		TotalHotels: 2,
	}

	path, err := e.ExportRevenueCSV("2024-05-02", standing)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "1,Hotel Lucerna,200.00,0.80,160.00,")
	assert.Contains(t, content, "2,Our Hotel,100.00,0.85,85.00,yes")
}
