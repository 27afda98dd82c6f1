package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Forecast is one day of weather for an airport or a city, never both.
// It deliberately does not embed BaseModel: duplicate repair keeps the
// record with the lowest identifier, which needs a monotonic integer key.
type Forecast struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	AirportID *uuid.UUID `gorm:"type:uuid;index"`
	CityID    *uuid.UUID `gorm:"type:uuid;index"`
	Date      time.Time  `gorm:"index"`

	MaxTemperature float64
	MinTemperature float64
	MaxHumidity    float64
	MaxWindSpeed   float64
	Visibility     float64
	Rain           float64 // precipitation probability

	CreatedAt int64 `gorm:"autoCreateTime"`
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

// LocationRef points a forecast lookup at an airport or a city.
type LocationRef struct {
	AirportID *uuid.UUID
	CityID    *uuid.UUID
	Latitude  float64
	Longitude float64
}

func AirportRef(a *Airport) LocationRef {
	id := a.ID
	return LocationRef{AirportID: &id, Latitude: a.Latitude, Longitude: a.Longitude}
}

func CityRef(c *City) LocationRef {
	id := c.ID
	return LocationRef{CityID: &id, Latitude: c.Latitude, Longitude: c.Longitude}
}
