package domain

// RoomCategory is one of the closed set of canonical room types used to make
// heterogeneous hotel listings comparable.
type RoomCategory string

const (
	RoomStandard  RoomCategory = "Standard"
	RoomBusiness  RoomCategory = "Business"
	RoomDoubleBed RoomCategory = "Double Bed"
	RoomQueen     RoomCategory = "Queen"
	RoomSuite     RoomCategory = "Suite"
	RoomSuperior  RoomCategory = "Superior"
	RoomKing      RoomCategory = "King"
	RoomSingle    RoomCategory = "Single"
	RoomTwin      RoomCategory = "Twin"
)

// RoomCategories lists every canonical category in display order
func RoomCategories() []RoomCategory {
	return []RoomCategory{
		RoomStandard,
		RoomBusiness,
		RoomDoubleBed,
		RoomQueen,
		RoomSuite,
		RoomSuperior,
		RoomKing,
		RoomSingle,
		RoomTwin,
	}
}
