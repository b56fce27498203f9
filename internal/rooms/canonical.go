// Package rooms maps free-text room-type labels onto the closed canonical
// set the comparison engine groups by. Listings describe the same room in
// endless variations ("Deluxe Double Bed Room", "KING SUITE w/ view"); the
// mapping is total and deterministic so every label lands in exactly one
// category.
package rooms

import (
	"strings"

	"ratepulse/pkg/contracts/domain"
)

// rule is one ordered substring match. Every keyword must be present.
type rule struct {
	keywords []string
	category domain.RoomCategory
}

// Rule order is part of the contract: a label containing both "business" and
// "double bed" resolves to Business because that rule is checked first.
var rules = []rule{
	{keywords: []string{"business"}, category: domain.RoomBusiness},
	{keywords: []string{"double", "bed"}, category: domain.RoomDoubleBed},
	{keywords: []string{"queen"}, category: domain.RoomQueen},
	{keywords: []string{"suite"}, category: domain.RoomSuite},
	{keywords: []string{"superior"}, category: domain.RoomSuperior},
	{keywords: []string{"king"}, category: domain.RoomKing},
	{keywords: []string{"single"}, category: domain.RoomSingle},
	{keywords: []string{"twin"}, category: domain.RoomTwin},
}

// Canonicalize maps a raw room-type label to its canonical category.
// Unrecognized or empty labels fall back to Standard.
func Canonicalize(label string) domain.RoomCategory {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return domain.RoomStandard
	}

	for _, r := range rules {
		matched := true
		for _, kw := range r.keywords {
			if !strings.Contains(normalized, kw) {
				matched = false
				break
			}
		}
		if matched {
			return r.category
		}
	}
	return domain.RoomStandard
}
