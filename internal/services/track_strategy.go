package services

import (
	"context"
	"time"

	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/utils"
)

// TrackStrategy is the capability pair that distinguishes the two itinerary
// tracks; the scheduler itself is track-agnostic.
type TrackStrategy interface {
	Kind() string
	SelectNextAirport(ctx context.Context, s *PlanningSession, candidates []db_models.Airport, current *db_models.Airport, date time.Time) (*db_models.Airport, error)
	SelectCity(ctx context.Context, airport *db_models.Airport, date time.Time) (*db_models.City, error)
}

type closestPathStrategy struct {
	scorer *DestinationScorer
}

func NewClosestPathStrategy(scorer *DestinationScorer) TrackStrategy {
	return &closestPathStrategy{scorer: scorer}
}

func (c *closestPathStrategy) Kind() string {
	return db_models.TrackClosest
}

func (c *closestPathStrategy) SelectNextAirport(ctx context.Context, s *PlanningSession, candidates []db_models.Airport, current *db_models.Airport, date time.Time) (*db_models.Airport, error) {
	airport := c.scorer.ClosestAirport(s, candidates, current)
	if airport == nil {
		return nil, utils.ErrNoCandidateAirports
	}
	return airport, nil
}

func (c *closestPathStrategy) SelectCity(ctx context.Context, airport *db_models.Airport, date time.Time) (*db_models.City, error) {
	return c.scorer.BestCity(ctx, airport, date)
}

type entertainmentStrategy struct {
	scorer *DestinationScorer
}

func NewEntertainmentStrategy(scorer *DestinationScorer) TrackStrategy {
	return &entertainmentStrategy{scorer: scorer}
}

func (e *entertainmentStrategy) Kind() string {
	return db_models.TrackEntertainment
}

func (e *entertainmentStrategy) SelectNextAirport(ctx context.Context, s *PlanningSession, candidates []db_models.Airport, current *db_models.Airport, date time.Time) (*db_models.Airport, error) {
	airport, _, err := e.scorer.BestEntertainmentChoice(ctx, s, candidates, current, date)
	return airport, err
}

func (e *entertainmentStrategy) SelectCity(ctx context.Context, airport *db_models.Airport, date time.Time) (*db_models.City, error) {
	return e.scorer.BestCity(ctx, airport, date)
}
