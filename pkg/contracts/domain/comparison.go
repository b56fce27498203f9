package domain

// PricedRow is the normalized unit the comparison engine operates on: one
// entity's price for one canonical room category on one date.
type PricedRow struct {
	Entity   string       `json:"entity"`
	Date     string       `json:"date"`
	Category RoomCategory `json:"room_type"`
	Price    float64      `json:"price"`
}

// ComparisonRow is the per-room-category comparison between the user hotel
// and the competitor set. Pointer fields are nil when a side has no data;
// a missing price is never reported as zero.
type ComparisonRow struct {
	RoomType             RoomCategory `json:"room_type"`
	MyPrice              *float64     `json:"my_price"`
	CompetitorAvgPrice   *float64     `json:"competitor_avg_price"`
	CompetitorCount      int          `json:"competitor_count"`
	Position             *int         `json:"position,omitempty"`
	PriceDifference      *float64     `json:"price_difference,omitempty"`
	PercentageDifference *float64     `json:"percentage_difference,omitempty"`
}

// HistoricalPoint is one dated average price observation
type HistoricalPoint struct {
	Date     string  `json:"date"`
	AvgPrice float64 `json:"avg_price"`
}

// HistoricalSeries is an entity's price history, ordered by date ascending
type HistoricalSeries struct {
	Entity string            `json:"entity"`
	Points []HistoricalPoint `json:"points"`
}

// PriceExtreme names the competitor at one end of the average-price range
type PriceExtreme struct {
	Name     string  `json:"name"`
	AvgPrice float64 `json:"avg_price"`
}

// PriceGap records the largest single-date spread between the user hotel and
// a competitor.
type PriceGap struct {
	Name string  `json:"name"`
	Date string  `json:"date"`
	Gap  float64 `json:"gap"`
}

// Volatility counts how often a competitor repriced between consecutive
// observations.
type Volatility struct {
	Name    string `json:"name"`
	Changes int    `json:"changes"`
}

// TrendInsights is the derived trend view over a user series and a set of
// competitor series. Fields are nil when the underlying data is missing.
type TrendInsights struct {
	MostExpensive  *PriceExtreme `json:"most_expensive,omitempty"`
	LeastExpensive *PriceExtreme `json:"least_expensive,omitempty"`
	BiggestGap     *PriceGap     `json:"biggest_gap,omitempty"`
	MostVolatile   *Volatility   `json:"most_volatile,omitempty"`
}

// RevenueEstimate is one hotel's occupancy-weighted revenue estimate
type RevenueEstimate struct {
	Hotel     string  `json:"hotel"`
	Revenue   float64 `json:"revenue"`
	AvgPrice  float64 `json:"avg_price"`
	Occupancy float64 `json:"occupancy"`
	IsUser    bool    `json:"is_user"`
}

// RevenueStanding ranks the user hotel against its competitor set by
// estimated revenue, highest first.
type RevenueStanding struct {
	Ranking     []RevenueEstimate `json:"ranking"`
	Position    int               `json:"position"`
	TotalHotels int               `json:"total_hotels"`
	VsPeers     *float64          `json:"vs_peers,omitempty"`
}
