package db_models

import "github.com/google/uuid"

const (
	VenueIndoorRestaurant   = "Indoor Restaurant"
	VenueOutdoorRestaurant  = "Outdoor Restaurant"
	VenueIndoorTheater      = "Indoor Theater"
	VenueOutdoorTheater     = "Outdoor Theater"
	VenueIndoorSportsArena  = "Indoor Sports Arena"
	VenueOutdoorSportsArena = "Outdoor Sports Arena"
)

type Venue struct {
	BaseModel
	Name      string
	VenueType string
	CityID    uuid.UUID `gorm:"type:uuid;index"`

	// Nil condition means the venue is open in any weather.
	Condition *VenueCondition `gorm:"foreignKey:VenueID"`
	Reviews   []Review        `gorm:"foreignKey:VenueID"`

	AverageScore     *float64
	ScoreNeedsUpdate bool
}

// VenueCondition is the operating envelope a venue requires to open.
type VenueCondition struct {
	BaseModel
	VenueID        uuid.UUID `gorm:"type:uuid;index"`
	MinTemperature float64
	MaxTemperature float64
	MinHumidity    float64
	MaxHumidity    float64
	MaxWindSpeed   float64
}

type Review struct {
	BaseModel
	VenueID   uuid.UUID `gorm:"type:uuid;index"`
	Score     float64
	Comment   string
	Validated bool
}
