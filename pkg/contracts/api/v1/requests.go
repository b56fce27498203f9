// Package api contains API contract definitions for the rate comparison
// engine. Version v1 represents the current stable API version.
package api

import (
	"ratepulse/pkg/contracts/domain"
)

// Comparison API Requests

// ComparisonRequest asks for the comparison table for one day. An empty
// date means "today" in the business timezone. Stars arrives the way the
// UI sends it ("4", "4 Stars", "All").
type ComparisonRequest struct {
	Date     string `json:"date,omitempty" validate:"omitempty,max=32"`
	Stars    string `json:"stars,omitempty" validate:"omitempty,max=16"`
	RoomType string `json:"room_type,omitempty" validate:"omitempty,max=64"`
	City     string `json:"city,omitempty" validate:"omitempty,max=64"`
}

// RevenueRequest asks for the occupancy-weighted revenue ranking.
type RevenueRequest struct {
	Date string `json:"date,omitempty" query:"date" validate:"omitempty,max=32"`
	City string `json:"city,omitempty" query:"city" validate:"omitempty,max=64"`
}

// InsightsRequest asks for the derived trend view.
type InsightsRequest struct {
	City string `json:"city,omitempty" query:"city" validate:"omitempty,max=64"`
}

// ExportComparisonRequest asks for a report file to be written.
type ExportComparisonRequest struct {
	Date     string `json:"date,omitempty" validate:"omitempty,max=32"`
	Stars    string `json:"stars,omitempty" validate:"omitempty,max=16"`
	RoomType string `json:"room_type,omitempty" validate:"omitempty,max=64"`
	City     string `json:"city,omitempty" validate:"omitempty,max=64"`
	Format   string `json:"format" validate:"required,oneof=csv xlsx"`
}

// Comparison API Responses

// ComparisonResponse is the assembled comparison table plus display context.
type ComparisonResponse struct {
	Date            string                 `json:"date"`
	Rows            []domain.ComparisonRow `json:"rows"`
	CompetitorCount int                    `json:"competitor_count"`
	Currency        string                 `json:"currency"`
	ExchangeRate    float64                `json:"exchange_rate"`
}

// RevenueResponse is the revenue ranking for the requested day.
type RevenueResponse struct {
	Date     string                 `json:"date"`
	Standing domain.RevenueStanding `json:"standing"`
}

// InsightsResponse carries the derived trends and the per-entity history.
type InsightsResponse struct {
	Trends      domain.TrendInsights      `json:"trends"`
	User        domain.HistoricalSeries   `json:"user"`
	Competitors []domain.HistoricalSeries `json:"competitors"`
}

// ExportResponse reports where the generated file was written.
type ExportResponse struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Date   string `json:"date"`
}
