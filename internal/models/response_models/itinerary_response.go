package response_models

type VenueSummary struct {
	Name      string `json:"name"`
	VenueType string `json:"venue_type"`
}

type ItineraryDayResponse struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`
	Track     string         `json:"track"`
	ArriveAt  string         `json:"arrive_at"`
	City      string         `json:"city"`
	LeaveFrom string         `json:"leave_from"`
	NextCity  string         `json:"next_city,omitempty"`
	Venues    []VenueSummary `json:"venues"`
	Selected  bool           `json:"selected"`
}

type TracksResponse struct {
	Closest       []ItineraryDayResponse `json:"closest"`
	Entertainment []ItineraryDayResponse `json:"entertainment"`
	Past          []ItineraryDayResponse `json:"past"`
}

type TripResponse struct {
	TripID           string `json:"trip_id"`
	CurrentDate      string `json:"current_date"`
	StartAirport     string `json:"start_airport"`
	FinalDestination string `json:"final_destination"`
}

type StepResponse struct {
	TripID      string   `json:"trip_id"`
	State       string   `json:"state"` // advanced | postponed | blocked
	CurrentDate string   `json:"current_date"`
	NewDays     int      `json:"new_days"`
	Warnings    []string `json:"warnings,omitempty"`
}

type CurrentLocationResponse struct {
	Airport   string  `json:"airport"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
