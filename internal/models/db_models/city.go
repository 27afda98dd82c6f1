package db_models

type City struct {
	BaseModel
	Name      string `gorm:"uniqueIndex"`
	Region    string
	Latitude  float64
	Longitude float64
	Validated bool

	Airports  []*Airport `gorm:"many2many:airport_cities"`
	Venues    []Venue    `gorm:"foreignKey:CityID"`
	Forecasts []Forecast `gorm:"foreignKey:CityID"`
}
