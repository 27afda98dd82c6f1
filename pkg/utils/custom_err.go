package utils

import "errors"

var (
	// Planning step errors (recoverable at the step boundary).
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrFetchFailed            = errors.New("weather fetch failed")
	ErrNoCandidateAirports    = errors.New("no candidate airports in range")
	ErrInvalidItineraryState  = errors.New("invalid itinerary state")
	ErrStepInProgress         = errors.New("a planning step is already in progress for this trip")

	// Lookup / validation errors.
	ErrTripNotFound       = errors.New("trip not found")
	ErrAirportNotFound    = errors.New("airport not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrLocationNotValid   = errors.New("location could not be validated")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
