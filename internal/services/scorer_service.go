package services

import (
	"context"
	"time"

	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/utils"
)

// DestinationScorer ranks cities and airports for a travel day. City scores
// come from weather quality plus open-venue count; airport choice depends on
// the track: closest-to-target or best-scoring city.
type DestinationScorer struct {
	forecasts ForecastServiceInterface
	meridian  *MeridianPolicy
}

func NewDestinationScorer(forecasts ForecastServiceInterface, meridian *MeridianPolicy) *DestinationScorer {
	return &DestinationScorer{
		forecasts: forecasts,
		meridian:  meridian,
	}
}

// ScoreCity: a comfortable day is worth 3 plus one per open venue; an
// uncomfortable day scores zero.
func (d *DestinationScorer) ScoreCity(ctx context.Context, city *db_models.City, date time.Time) (int, error) {
	forecast, err := d.forecasts.ForecastFor(ctx, db_models.CityRef(city), date)
	if err != nil {
		return 0, err
	}

	score := 0
	if CityIsComfortable(forecast) {
		score += 3
		score += len(OpenVenues(city.Venues, forecast))
	}
	return score, nil
}

// BestCity picks the airport's highest-scoring city; ties keep the first
// city in scan order.
func (d *DestinationScorer) BestCity(ctx context.Context, airport *db_models.Airport, date time.Time) (*db_models.City, error) {
	if len(airport.Cities) == 0 {
		return nil, utils.ErrInvalidItineraryState
	}

	best := airport.Cities[0]
	bestScore := 0
	for _, city := range airport.Cities {
		score, err := d.ScoreCity(ctx, city, date)
		if err != nil {
			return nil, err
		}
		if score > bestScore {
			bestScore = score
			best = city
		}
	}
	return best, nil
}

// BestEntertainmentChoice picks the next airport and city for the
// entertainment track: a meridian crossing wins outright; otherwise
// candidates making positive progress toward the target are scored and the
// best city's airport wins, first seen on ties.
func (d *DestinationScorer) BestEntertainmentChoice(ctx context.Context, s *PlanningSession, candidates []db_models.Airport, current *db_models.Airport, date time.Time) (*db_models.Airport, *db_models.City, error) {
	if crossing := d.meridian.CrossingCandidate(s, current, candidates); crossing != nil {
		city, err := d.BestCity(ctx, crossing, date)
		if err != nil {
			return nil, nil, err
		}
		return crossing, city, nil
	}

	progressing := positiveProgress(candidates, current, s.Target)
	if len(progressing) == 0 {
		progressing = candidates
	}
	if len(progressing) == 0 {
		return nil, nil, utils.ErrNoCandidateAirports
	}

	bestAirport := &progressing[0]
	if len(bestAirport.Cities) == 0 {
		return nil, nil, utils.ErrInvalidItineraryState
	}
	bestCity := bestAirport.Cities[0]
	bestScore := 0
	for i := range progressing {
		city, err := d.BestCity(ctx, &progressing[i], date)
		if err != nil {
			return nil, nil, err
		}
		score, err := d.ScoreCity(ctx, city, date)
		if err != nil {
			return nil, nil, err
		}
		if score > bestScore {
			bestScore = score
			bestCity = city
			bestAirport = &progressing[i]
		}
	}
	return bestAirport, bestCity, nil
}

// ClosestAirport picks the next airport for the closest-path track: a
// meridian crossing wins outright, otherwise the candidate nearest the
// session's active target.
func (d *DestinationScorer) ClosestAirport(s *PlanningSession, candidates []db_models.Airport, current *db_models.Airport) *db_models.Airport {
	if crossing := d.meridian.CrossingCandidate(s, current, candidates); crossing != nil {
		return crossing
	}

	var best *db_models.Airport
	minDistance := 0.0
	for i := range candidates {
		dist := utils.DistanceKm(
			utils.GeoPoint{Latitude: candidates[i].Latitude, Longitude: candidates[i].Longitude},
			s.Target,
		)
		if best == nil || dist < minDistance {
			minDistance = dist
			best = &candidates[i]
		}
	}
	return best
}

// positiveProgress keeps candidates strictly closer to the target than the
// current airport is.
func positiveProgress(candidates []db_models.Airport, current *db_models.Airport, target utils.GeoPoint) []db_models.Airport {
	currentDistance := utils.DistanceKm(
		utils.GeoPoint{Latitude: current.Latitude, Longitude: current.Longitude}, target)

	progressing := make([]db_models.Airport, 0, len(candidates))
	for i := range candidates {
		d := utils.DistanceKm(
			utils.GeoPoint{Latitude: candidates[i].Latitude, Longitude: candidates[i].Longitude}, target)
		if d < currentDistance {
			progressing = append(progressing, candidates[i])
		}
	}
	return progressing
}
