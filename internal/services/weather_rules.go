package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/repositories"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
	"wayfarer/pkg/weatherapi"
)

const (
	// Departure-safety limits applied to the day-after-arrival forecast.
	safeMaxTemperature = 45
	safeMinVisibility  = 5

	// Lift-off gate: any hour below this visibility grounds the day.
	liftOffMinVisibility = 5000

	envelopeTTL = 30 * time.Minute
)

// CityIsComfortable reports whether a day in the city is pleasant enough to
// score it as visitable. Both temperature ranges are required to hold; the
// second narrows the first to [32,40] and the pair is kept as two checks
// because the scoring behavior depends on it.
func CityIsComfortable(f *db_models.Forecast) bool {
	return 32 <= f.MaxTemperature && f.MaxTemperature <= 90 &&
		0 <= f.MaxTemperature && f.MaxTemperature <= 40 &&
		f.MaxWindSpeed <= 20
}

// VenueMatchesForecast reports whether the forecast sits inside the venue's
// operating envelope. A venue without a condition is always open.
func VenueMatchesForecast(v *db_models.Venue, f *db_models.Forecast) bool {
	if v.Condition == nil {
		return true
	}
	c := v.Condition
	return c.MinTemperature <= f.MaxTemperature && f.MaxTemperature <= c.MaxTemperature &&
		c.MinHumidity <= f.MaxHumidity && f.MaxHumidity <= c.MaxHumidity &&
		f.MaxWindSpeed <= c.MaxWindSpeed
}

// OpenVenues filters a city's venues down to those open under the forecast.
func OpenVenues(venues []db_models.Venue, f *db_models.Forecast) []db_models.Venue {
	open := make([]db_models.Venue, 0, len(venues))
	for i := range venues {
		if VenueMatchesForecast(&venues[i], f) {
			open = append(open, venues[i])
		}
	}
	return open
}

// WeatherGate holds the stateful admissibility checks: departure safety
// against persisted forecasts and the hourly lift-off gate against the
// fetch collaborator.
type WeatherGate struct {
	forecasts repositories.ForecastRepository
	fetcher   weatherapi.Fetcher
	envelopes mem.EnvelopeStore
}

func NewWeatherGate(forecasts repositories.ForecastRepository, fetcher weatherapi.Fetcher, envelopes mem.EnvelopeStore) *WeatherGate {
	return &WeatherGate{
		forecasts: forecasts,
		fetcher:   fetcher,
		envelopes: envelopes,
	}
}

// AirportIsSafe checks conditions for departing the day after arriving:
// an airport with no forecast for date+1 is assumed safe; otherwise some
// forecast for that day must show tolerable temperature and visibility.
func (g *WeatherGate) AirportIsSafe(ctx context.Context, airport *db_models.Airport, date time.Time) (bool, error) {
	nextDay := utils.NextDay(date)
	rows, err := g.forecasts.FindByLocationAndDate(ctx, db_models.AirportRef(airport), nextDay)
	if err != nil {
		return false, utils.ErrPersistenceUnavailable
	}
	if len(rows) == 0 {
		return true, nil
	}
	for i := range rows {
		if rows[i].MaxTemperature < safeMaxTemperature && rows[i].Visibility > safeMinVisibility {
			return true, nil
		}
	}
	return false, nil
}

// LiftOffPermitted checks the hourly envelope for the date: any hour under
// the visibility floor, or any active alert, grounds the departure.
func (g *WeatherGate) LiftOffPermitted(ctx context.Context, airport *db_models.Airport, date time.Time) (bool, error) {
	key := fmt.Sprintf("%s|%s", airport.ID, utils.FormatDate(date))
	env := g.envelopes.Get(key)
	if env == nil {
		fetched, err := g.fetcher.FetchHourly(ctx, airport.Latitude, airport.Longitude)
		if err != nil {
			log.Printf("lift-off fetch failed for %s: %v", airport.Name, err)
			return false, utils.ErrFetchFailed
		}
		env = fetched
		g.envelopes.Set(key, env, envelopeTTL)
	}

	for _, hour := range env.Hours {
		if utils.SameDate(hour.Time, date) && hour.Visibility < liftOffMinVisibility {
			return false, nil
		}
	}
	if len(env.Alerts) > 0 {
		return false, nil
	}
	return true, nil
}
