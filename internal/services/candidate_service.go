package services

import (
	"context"
	"time"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

// RangeThresholdKm is the maximum single-hop distance between airports.
const RangeThresholdKm = 3500

type CandidateSelectorInterface interface {
	ReachableAirports(ctx context.Context, current *db_models.Airport, date time.Time) ([]db_models.Airport, error)
}

type CandidateSelector struct {
	airports repositories.AirportRepository
	gate     *WeatherGate
}

func NewCandidateSelector(airports repositories.AirportRepository, gate *WeatherGate) CandidateSelectorInterface {
	return &CandidateSelector{
		airports: airports,
		gate:     gate,
	}
}

// ReachableAirports returns every airport within range of the current one
// that is weather-safe and has at least one city. When that filter leaves
// nothing, it relaxes to range and identity only so the traveler is never
// stranded while any airport is in range.
func (c *CandidateSelector) ReachableAirports(ctx context.Context, current *db_models.Airport, date time.Time) ([]db_models.Airport, error) {
	airports, err := c.airports.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	from := utils.GeoPoint{Latitude: current.Latitude, Longitude: current.Longitude}

	inRange := make([]db_models.Airport, 0, len(airports))
	for i := range airports {
		a := &airports[i]
		if a.ID == current.ID {
			continue
		}
		if utils.DistanceKm(from, utils.GeoPoint{Latitude: a.Latitude, Longitude: a.Longitude}) > RangeThresholdKm {
			continue
		}
		if len(a.Cities) == 0 {
			continue
		}
		safe, err := c.gate.AirportIsSafe(ctx, a, date)
		if err != nil {
			return nil, err
		}
		if safe {
			inRange = append(inRange, airports[i])
		}
	}

	if len(inRange) == 0 {
		for i := range airports {
			a := &airports[i]
			if a.ID == current.ID {
				continue
			}
			if utils.DistanceKm(from, utils.GeoPoint{Latitude: a.Latitude, Longitude: a.Longitude}) <= RangeThresholdKm {
				inRange = append(inRange, airports[i])
			}
		}
	}

	return inRange, nil
}
