package models

const (
	VenueActive   = "Y"
	VenueInactive = "N"
)

type Venue struct {
	ID       int    `json:"id" db:"venue_id"`
	Name     string `json:"name" db:"venue_name"`
	Status   string `json:"status" db:"venue_status"`
	Capacity int    `json:"capacity" db:"venue_capacity"`
}

func (v Venue) IsActive() bool {
	return v.Status == VenueActive
}
