package request_models

type CreateAirportRequest struct {
	Name      string  `json:"name" binding:"required"`
	Code      string  `json:"code" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreateCityRequest struct {
	Name         string   `json:"name" binding:"required"`
	Region       string   `json:"region"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	AirportNames []string `json:"airport_names"`
}

type VenueConditionRequest struct {
	MinTemperature float64 `json:"min_temperature"`
	MaxTemperature float64 `json:"max_temperature"`
	MinHumidity    float64 `json:"min_humidity"`
	MaxHumidity    float64 `json:"max_humidity"`
	MaxWindSpeed   float64 `json:"max_wind_speed"`
}

type CreateVenueRequest struct {
	Name      string                 `json:"name" binding:"required"`
	VenueType string                 `json:"venue_type" binding:"required"`
	CityName  string                 `json:"city_name" binding:"required"`
	Condition *VenueConditionRequest `json:"condition"`
}
