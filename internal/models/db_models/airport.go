package db_models

type Airport struct {
	BaseModel
	Name      string `gorm:"uniqueIndex"`
	Code      string // ICAO code, matched against the reference dataset
	Latitude  float64
	Longitude float64
	Validated bool

	Cities    []*City    `gorm:"many2many:airport_cities"`
	Forecasts []Forecast `gorm:"foreignKey:AirportID"`
}
