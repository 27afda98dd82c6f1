package services

import (
	"context"
	"log"
	"time"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
	"wayfarer/pkg/weatherapi"
)

// Daily responses carry no visibility figure; stored forecasts use this
// placeholder, which sits above every visibility threshold in the rules.
const dailyVisibilityPlaceholder = 10

type ForecastServiceInterface interface {
	// ForecastFor returns exactly one forecast for the location and date,
	// fetching from the weather source when none is stored and repairing
	// duplicate rows when more than one is.
	ForecastFor(ctx context.Context, ref db_models.LocationRef, date time.Time) (*db_models.Forecast, error)

	// UpdateForecast overwrites an existing record with the matching day of a
	// fresh multi-day response; a response without that day is a no-op.
	UpdateForecast(ctx context.Context, existing *db_models.Forecast, days []weatherapi.DailyForecast) error

	// RefreshAirportForecasts re-fetches weather for an airport referenced by
	// a pending itinerary day: update the stored record matching the day if
	// future records exist, otherwise create the whole response as new rows.
	RefreshAirportForecasts(ctx context.Context, airport *db_models.Airport, itineraryDate, currentDate time.Time) error
}

type ForecastService struct {
	forecasts repositories.ForecastRepository
	fetcher   weatherapi.Fetcher
}

func NewForecastService(forecasts repositories.ForecastRepository, fetcher weatherapi.Fetcher) ForecastServiceInterface {
	return &ForecastService{
		forecasts: forecasts,
		fetcher:   fetcher,
	}
}

func (s *ForecastService) ForecastFor(ctx context.Context, ref db_models.LocationRef, date time.Time) (*db_models.Forecast, error) {
	date = utils.DateOnly(date)
	fetched := false

	// Each pass either returns, performs the one allowed fetch, or strictly
	// reduces the duplicate count, so the loop terminates. The cap is a
	// backstop, not a tuning knob.
	for pass := 0; pass < 64; pass++ {
		rows, err := s.forecasts.FindByLocationAndDate(ctx, ref, date)
		if err != nil {
			return nil, utils.ErrPersistenceUnavailable
		}

		switch {
		case len(rows) == 1:
			return &rows[0], nil

		case len(rows) == 0:
			if fetched {
				// The response did not cover the requested date.
				return nil, utils.ErrFetchFailed
			}
			days, err := s.fetcher.FetchDaily(ctx, ref.Latitude, ref.Longitude)
			if err != nil {
				log.Printf("forecast fetch failed: %v", err)
				return nil, utils.ErrFetchFailed
			}
			if err := s.createFromDaily(ctx, ref, days); err != nil {
				return nil, err
			}
			fetched = true

		default:
			// Duplicate rows: keep the lowest id (rows are id-ordered).
			for i := 1; i < len(rows); i++ {
				if err := s.forecasts.DeleteByID(ctx, rows[i].ID); err != nil {
					return nil, utils.ErrPersistenceUnavailable
				}
			}
		}
	}
	return nil, utils.ErrFetchFailed
}

func (s *ForecastService) UpdateForecast(ctx context.Context, existing *db_models.Forecast, days []weatherapi.DailyForecast) error {
	var match *weatherapi.DailyForecast
	for i := range days {
		if utils.SameDate(days[i].Date, existing.Date) {
			match = &days[i]
		}
	}
	if match == nil {
		return nil
	}

	existing.MaxTemperature = match.MaxTemperature
	existing.MinTemperature = match.MinTemperature
	existing.MaxHumidity = match.Humidity
	existing.MaxWindSpeed = match.WindSpeed
	existing.Visibility = dailyVisibilityPlaceholder
	existing.Rain = match.Pop

	if err := s.forecasts.Save(ctx, existing); err != nil {
		return utils.ErrPersistenceUnavailable
	}
	return nil
}

func (s *ForecastService) RefreshAirportForecasts(ctx context.Context, airport *db_models.Airport, itineraryDate, currentDate time.Time) error {
	future, err := s.forecasts.ListForAirportFrom(ctx, airport.ID, utils.DateOnly(currentDate))
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}

	days, err := s.fetcher.FetchDaily(ctx, airport.Latitude, airport.Longitude)
	if err != nil {
		log.Printf("forecast refresh failed for %s: %v", airport.Name, err)
		return utils.ErrFetchFailed
	}

	if len(future) > 0 {
		target := future[0]
		for i := range future {
			if utils.SameDate(future[i].Date, itineraryDate) {
				target = future[i]
			}
		}
		return s.UpdateForecast(ctx, &target, days)
	}
	return s.createFromDaily(ctx, db_models.AirportRef(airport), days)
}

func (s *ForecastService) createFromDaily(ctx context.Context, ref db_models.LocationRef, days []weatherapi.DailyForecast) error {
	rows := make([]db_models.Forecast, 0, len(days))
	for _, d := range days {
		rows = append(rows, db_models.Forecast{
			AirportID:      ref.AirportID,
			CityID:         ref.CityID,
			Date:           utils.DateOnly(d.Date),
			MaxTemperature: d.MaxTemperature,
			MinTemperature: d.MinTemperature,
			MaxHumidity:    d.Humidity,
			MaxWindSpeed:   d.WindSpeed,
			Visibility:     dailyVisibilityPlaceholder,
			Rain:           d.Pop,
		})
	}
	if err := s.forecasts.CreateBatch(ctx, rows); err != nil {
		return utils.ErrPersistenceUnavailable
	}
	return nil
}
