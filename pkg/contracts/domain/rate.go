package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PriceToken is a raw scraped price value. The scrapers emit prices either
// as JSON numbers or as display strings ("MXN 1,358", "$189.00"), so the
// token preserves whichever form arrived until the pricing package parses it.
type PriceToken struct {
	value interface{}
}

// NumberToken wraps a numeric price value
func NumberToken(v float64) PriceToken {
	return PriceToken{value: v}
}

// StringToken wraps a string price value
func StringToken(s string) PriceToken {
	return PriceToken{value: s}
}

// Value returns the underlying raw value (float64, string, or nil)
func (t PriceToken) Value() interface{} {
	return t.value
}

// IsZero reports whether the token carries no value at all
func (t PriceToken) IsZero() bool {
	return t.value == nil
}

// UnmarshalJSON accepts a JSON number, string, or null
func (t *PriceToken) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.value = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.value = s
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("price token must be a number or string: %w", err)
	}
	t.value = f
	return nil
}

// MarshalJSON writes the token back in its original form
func (t PriceToken) MarshalJSON() ([]byte, error) {
	if t.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}

// RoomEntry is a single scraped room offer. Some scraper versions write the
// price under "rate" instead of "price"; Token falls back accordingly.
type RoomEntry struct {
	RoomType string     `json:"room_type"`
	Price    PriceToken `json:"price,omitempty"`
	Rate     PriceToken `json:"rate,omitempty"`
}

// Token returns the price token, preferring "price" over the legacy "rate" key
func (e RoomEntry) Token() PriceToken {
	if !e.Price.IsZero() {
		return e.Price
	}
	return e.Rate
}

// SnapshotDictionary maps a loosely formatted date key to the room offers
// recorded for that date. Keys come straight from the scraper and may be
// written in different formats or timezones.
type SnapshotDictionary map[string][]RoomEntry

// CompetitorSnapshot is one competitor hotel's scraped data hand-off
type CompetitorSnapshot struct {
	Name  string             `json:"name"`
	City  string             `json:"city,omitempty"`
	Stars int                `json:"stars,omitempty"`
	Rooms SnapshotDictionary `json:"rooms"`
}

// UserRate is one pricing record for the user's own hotel
type UserRate struct {
	Hotel       string     `json:"hotel"`
	RoomType    string     `json:"room_type"`
	Price       PriceToken `json:"price"`
	CheckinDate string     `json:"checkin_date,omitempty"`
}
