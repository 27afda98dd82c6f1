package services

import (
	"wayfarer/internal/models/db_models"
)

// VenuePicker chooses at most one event venue and one dining venue from a
// day's open-venue list. The outdoor event priority alternates with the
// session's running play/sport balance. Within one priority scan the LAST
// matching venue wins; that behavior is relied on by callers and covered by
// tests, so keep it when touching the scans.
type VenuePicker struct{}

func NewVenuePicker() *VenuePicker {
	return &VenuePicker{}
}

func (p *VenuePicker) DetermineVenues(s *PlanningSession, open []db_models.Venue) []db_models.Venue {
	var event *db_models.Venue
	if s.OutdoorPlays < s.OutdoorSportingEvents {
		event = lastOfType(open, db_models.VenueOutdoorTheater)
		if event == nil {
			event = lastOfType(open, db_models.VenueOutdoorSportsArena)
		}
	} else {
		event = lastOfType(open, db_models.VenueOutdoorSportsArena)
		if event == nil {
			event = lastOfType(open, db_models.VenueOutdoorTheater)
		}
	}
	if event == nil {
		event = lastIndoorEvent(open)
	}

	restaurant := lastOfType(open, db_models.VenueOutdoorRestaurant)
	if event == nil && restaurant == nil {
		restaurant = lastOfType(open, db_models.VenueIndoorRestaurant)
	}

	if event != nil {
		switch event.VenueType {
		case db_models.VenueOutdoorTheater:
			s.OutdoorPlays++
		case db_models.VenueOutdoorSportsArena:
			s.OutdoorSportingEvents++
		}
	}

	venues := make([]db_models.Venue, 0, 2)
	if event != nil {
		venues = append(venues, *event)
	}
	if restaurant != nil {
		venues = append(venues, *restaurant)
	}
	return venues
}

func lastOfType(venues []db_models.Venue, venueType string) *db_models.Venue {
	var match *db_models.Venue
	for i := range venues {
		if venues[i].VenueType == venueType {
			match = &venues[i]
		}
	}
	return match
}

func lastIndoorEvent(venues []db_models.Venue) *db_models.Venue {
	var match *db_models.Venue
	for i := range venues {
		if venues[i].VenueType == db_models.VenueIndoorTheater ||
			venues[i].VenueType == db_models.VenueIndoorSportsArena {
			match = &venues[i]
		}
	}
	return match
}
