package db_models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TrackClosest       = "Close"
	TrackEntertainment = "Entertain"
	TrackPast          = "Past"
)

// Itinerary is one planned day of a trip: arrive at an airport, spend the
// day in a city, depart from the left-from airport the next morning.
type Itinerary struct {
	BaseModel
	TripID            uuid.UUID `gorm:"type:uuid;index"`
	Date              time.Time `gorm:"index"`
	AirportID         uuid.UUID `gorm:"type:uuid"`
	CityID            uuid.UUID `gorm:"type:uuid"`
	LeftFromAirportID uuid.UUID `gorm:"type:uuid"`
	TrackKind         string
	Selected          bool
	NextCity          string // name of the following day's city, set during linking

	Airport         Airport `gorm:"foreignKey:AirportID"`
	City            City    `gorm:"foreignKey:CityID"`
	LeftFromAirport Airport `gorm:"foreignKey:LeftFromAirportID"`
	Venues          []Venue `gorm:"many2many:itinerary_venues"`
}

func (i *Itinerary) IsPending() bool {
	return i.TrackKind == TrackClosest || i.TrackKind == TrackEntertainment
}
