package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ratepulse/internal/config"
	"ratepulse/internal/files"
	"ratepulse/pkg/contracts/domain"
)

var comparisonHeaders = []string{
	"Room Type", "My Price", "Competitor Avg", "Competitors",
	"Position", "Difference", "Difference %",
}

// ComparisonExporter writes comparison tables, insights, and revenue
// rankings to report files.
type ComparisonExporter struct {
	paths     *config.PathsConfig
	fileMgr   *files.Manager
	csvWriter *CSVWriter
}

// NewComparisonExporter creates a new report exporter
func NewComparisonExporter(paths *config.PathsConfig) *ComparisonExporter {
	return &ComparisonExporter{
		paths:     paths,
		fileMgr:   files.NewManager(paths),
		csvWriter: NewCSVWriter(paths),
	}
}

// reportPath resolves a report filename inside the reports directory
func (e *ComparisonExporter) reportPath(filename string) string {
	return e.fileMgr.CleanPath("reports/" + filename)
}

// ExportComparisonCSV writes the comparison table for one day to
// comparison_<date>.csv and returns the file path.
func (e *ComparisonExporter) ExportComparisonCSV(date string, rows []domain.ComparisonRow) (string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, comparisonRecord(row))
	}

	filename := fmt.Sprintf("comparison_%s.csv", date)
	if err := e.csvWriter.WriteSimpleCSV(filename, comparisonHeaders, records); err != nil {
		return "", fmt.Errorf("failed to export comparison csv: %w", err)
	}
	return e.reportPath(filename), nil
}

// ExportComparisonXLSX writes the comparison table for one day to
// comparison_<date>.xlsx and returns the file path.
func (e *ComparisonExporter) ExportComparisonXLSX(date string, rows []domain.ComparisonRow) (string, error) {
	if err := e.fileMgr.EnsureDirectory("reports/"); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Comparison"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range comparisonHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, row := range rows {
		values := []interface{}{
			string(row.RoomType),
			cellFloat(row.MyPrice),
			cellFloat(row.CompetitorAvgPrice),
			row.CompetitorCount,
			cellInt(row.Position),
			cellFloat(row.PriceDifference),
			cellFloat(row.PercentageDifference),
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	fullPath := e.reportPath(fmt.Sprintf("comparison_%s.xlsx", date))
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to export comparison xlsx: %w", err)
	}
	return fullPath, nil
}

// ExportInsightsCSV writes the trend insight summary to insights_<date>.csv.
func (e *ComparisonExporter) ExportInsightsCSV(date string, trends domain.TrendInsights) (string, error) {
	headers := []string{"Insight", "Hotel", "Value", "Date"}

	var records [][]string
	if trends.MostExpensive != nil {
		records = append(records, []string{
			"Most Expensive", trends.MostExpensive.Name,
			formatFloat(trends.MostExpensive.AvgPrice), "",
		})
	}
	if trends.LeastExpensive != nil {
		records = append(records, []string{
			"Least Expensive", trends.LeastExpensive.Name,
			formatFloat(trends.LeastExpensive.AvgPrice), "",
		})
	}
	if trends.BiggestGap != nil {
		records = append(records, []string{
			"Biggest Gap", trends.BiggestGap.Name,
			formatFloat(trends.BiggestGap.Gap), trends.BiggestGap.Date,
		})
	}
	if trends.MostVolatile != nil {
		records = append(records, []string{
			"Most Volatile", trends.MostVolatile.Name,
			fmt.Sprintf("%d changes", trends.MostVolatile.Changes), "",
		})
	}

	filename := fmt.Sprintf("insights_%s.csv", date)
	if err := e.csvWriter.WriteSimpleCSV(filename, headers, records); err != nil {
		return "", fmt.Errorf("failed to export insights csv: %w", err)
	}
	return e.reportPath(filename), nil
}

// ExportRevenueCSV writes the revenue ranking to revenue_<date>.csv.
func (e *ComparisonExporter) ExportRevenueCSV(date string, standing domain.RevenueStanding) (string, error) {
	headers := []string{"Rank", "Hotel", "Avg Price", "Occupancy", "Est. Revenue", "Is User"}

	records := make([][]string, 0, len(standing.Ranking))
	for i, estimate := range standing.Ranking {
		isUser := ""
		if estimate.IsUser {
			isUser = "yes"
		}
		records = append(records, []string{
			fmt.Sprintf("%d", i+1),
			estimate.Hotel,
			formatFloat(estimate.AvgPrice),
			formatFloat(estimate.Occupancy),
			formatFloat(estimate.Revenue),
			isUser,
		})
	}

	filename := fmt.Sprintf("revenue_%s.csv", date)
	if err := e.csvWriter.WriteSimpleCSV(filename, headers, records); err != nil {
		return "", fmt.Errorf("failed to export revenue csv: %w", err)
	}
	return e.reportPath(filename), nil
}

func comparisonRecord(row domain.ComparisonRow) []string {
	return []string{
		string(row.RoomType),
		formatFloatPtr(row.MyPrice),
		formatFloatPtr(row.CompetitorAvgPrice),
		fmt.Sprintf("%d", row.CompetitorCount),
		formatIntPtr(row.Position),
		formatFloatPtr(row.PriceDifference),
		formatFloatPtr(row.PercentageDifference),
	}
}

func cellFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func cellInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
