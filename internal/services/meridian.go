package services

import (
	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/utils"
)

// CrossingThresholdKm: once the traveler is this close to the active target,
// the meridian policy forces a long hop into the opposite hemisphere.
const CrossingThresholdKm = 3500

// MeridianPolicy keeps a round-the-world trip moving in one rotational
// direction. When the traveler nears the active target it picks the farthest
// candidate across the prime meridian and advances the target, so the trip
// never backtracks toward ground already covered.
type MeridianPolicy struct{}

func NewMeridianPolicy() *MeridianPolicy {
	return &MeridianPolicy{}
}

// CrossingCandidate returns the forced hop, or nil when the policy does not
// activate. Session state is only mutated when a hop is returned.
func (m *MeridianPolicy) CrossingCandidate(s *PlanningSession, current *db_models.Airport, candidates []db_models.Airport) *db_models.Airport {
	from := utils.GeoPoint{Latitude: current.Latitude, Longitude: current.Longitude}
	if utils.DistanceKm(from, s.Target) >= CrossingThresholdKm {
		return nil
	}

	var best *db_models.Airport
	bestDistance := 0.0
	for i := range candidates {
		if !utils.OppositeHemispheres(current.Longitude, candidates[i].Longitude) {
			continue
		}
		d := utils.DistanceKm(from, utils.GeoPoint{
			Latitude:  candidates[i].Latitude,
			Longitude: candidates[i].Longitude,
		})
		if d > bestDistance {
			bestDistance = d
			best = &candidates[i]
		}
	}
	if best == nil {
		return nil
	}

	previous := s.PreviousTarget
	s.PreviousTarget = s.Target
	switch {
	case previous == utils.PrimeMeridianTarget || previous == utils.OppositePrimeMeridianTarget:
		// Both references have been used; aim for home.
		s.Target = utils.GeoPoint{
			Latitude:  s.FinalDestination.Latitude,
			Longitude: s.FinalDestination.Longitude,
		}
	case s.Target == utils.PrimeMeridianTarget:
		s.Target = utils.OppositePrimeMeridianTarget
	case s.Target == utils.OppositePrimeMeridianTarget:
		s.Target = utils.PrimeMeridianTarget
	}

	return best
}
