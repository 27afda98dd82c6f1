package request_models

type CreateTripRequest struct {
	StartAirport     string `json:"start_airport"`
	FinalDestination string `json:"final_destination" binding:"required"`
	StartDate        string `json:"start_date"` // YYYY-MM-DD, defaults to today
}

type SelectDayRequest struct {
	ItineraryID string `json:"itinerary_id" binding:"required"`
	Selected    bool   `json:"selected"`
}
