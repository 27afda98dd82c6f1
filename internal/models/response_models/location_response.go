package response_models

type AirportResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Validated bool    `json:"validated"`
}

type CityResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Region    string   `json:"region"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Validated bool     `json:"validated"`
	Airports  []string `json:"airports"`
}

type VenueResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	VenueType    string   `json:"venue_type"`
	City         string   `json:"city"`
	AverageScore *float64 `json:"average_score,omitempty"`
}

type UnvalidatedLocationsResponse struct {
	Airports []AirportResponse `json:"airports"`
	Cities   []CityResponse    `json:"cities"`
}

type ReviewResponse struct {
	ID        string  `json:"id"`
	Venue     string  `json:"venue"`
	Score     float64 `json:"score"`
	Comment   string  `json:"comment"`
	Validated bool    `json:"validated"`
}
