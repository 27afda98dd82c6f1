package services

import (
	"context"
	"testing"
	"time"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/repositories"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
	"wayfarer/pkg/weatherapi"
)

func TestCityIsComfortable(t *testing.T) {
	cases := []struct {
		name string
		temp float64
		wind float64
		want bool
	}{
		{"mild day", 35, 5, true},
		{"lower bound", 32, 5, true},
		{"upper bound", 40, 5, true},
		{"too cold", 20, 5, false},
		{"hot but under ninety", 70, 5, false},
		{"too windy", 35, 25, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := &db_models.Forecast{MaxTemperature: c.temp, MaxWindSpeed: c.wind}
			if got := CityIsComfortable(f); got != c.want {
				t.Errorf("CityIsComfortable(temp=%f wind=%f) = %v, want %v", c.temp, c.wind, got, c.want)
			}
		})
	}
}

func TestVenueMatchesForecast(t *testing.T) {
	forecast := &db_models.Forecast{MaxTemperature: 35, MaxHumidity: 60, MaxWindSpeed: 10}

	unconditioned := &db_models.Venue{Name: "any weather"}
	if !VenueMatchesForecast(unconditioned, forecast) {
		t.Error("venue without a condition should always be open")
	}

	open := &db_models.Venue{Condition: &db_models.VenueCondition{
		MinTemperature: 30, MaxTemperature: 40,
		MinHumidity: 0, MaxHumidity: 80,
		MaxWindSpeed: 15,
	}}
	if !VenueMatchesForecast(open, forecast) {
		t.Error("forecast inside the envelope should open the venue")
	}

	windy := &db_models.Venue{Condition: &db_models.VenueCondition{
		MinTemperature: 30, MaxTemperature: 40,
		MinHumidity: 0, MaxHumidity: 80,
		MaxWindSpeed: 5,
	}}
	if VenueMatchesForecast(windy, forecast) {
		t.Error("wind over the venue limit should close the venue")
	}
}

func TestOpenVenuesFilters(t *testing.T) {
	forecast := &db_models.Forecast{MaxTemperature: 35, MaxHumidity: 60, MaxWindSpeed: 10}
	venues := []db_models.Venue{
		{Name: "always open"},
		{Name: "too hot here", Condition: &db_models.VenueCondition{
			MinTemperature: 0, MaxTemperature: 30, MaxHumidity: 100, MaxWindSpeed: 99,
		}},
	}

	open := OpenVenues(venues, forecast)
	if len(open) != 1 || open[0].Name != "always open" {
		t.Errorf("unexpected open venues: %+v", open)
	}
}

func TestAirportIsSafeUsesNextDayForecast(t *testing.T) {
	db := newTestDB(t)
	forecasts := repositories.NewForecastRepository(db)
	gate := NewWeatherGate(forecasts, &stubFetcher{}, mem.NewHourlyEnvelopes())

	airport := seedAirport(t, db, "Alpha", "AAAA", 40, 10)
	date := utils.DateOnly(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// No forecast for the day after arrival: assumed safe.
	safe, err := gate.AirportIsSafe(ctx, airport, date)
	if err != nil {
		t.Fatalf("AirportIsSafe: %v", err)
	}
	if !safe {
		t.Error("airport with no stored forecast should be safe")
	}

	// A hot day-after forecast grounds the airport.
	hot := db_models.Forecast{AirportID: &airport.ID, Date: utils.NextDay(date), MaxTemperature: 50, Visibility: 10}
	if err := db.Create(&hot).Error; err != nil {
		t.Fatalf("seed forecast: %v", err)
	}
	safe, err = gate.AirportIsSafe(ctx, airport, date)
	if err != nil {
		t.Fatalf("AirportIsSafe: %v", err)
	}
	if safe {
		t.Error("airport with only an unsafe forecast should not be safe")
	}

	// One tolerable row alongside the bad one is enough.
	ok := db_models.Forecast{AirportID: &airport.ID, Date: utils.NextDay(date), MaxTemperature: 30, Visibility: 10}
	if err := db.Create(&ok).Error; err != nil {
		t.Fatalf("seed forecast: %v", err)
	}
	safe, err = gate.AirportIsSafe(ctx, airport, date)
	if err != nil {
		t.Fatalf("AirportIsSafe: %v", err)
	}
	if !safe {
		t.Error("one tolerable forecast should make the airport safe")
	}
}

func TestLiftOffPermitted(t *testing.T) {
	db := newTestDB(t)
	airport := seedAirport(t, db, "Alpha", "AAAA", 40, 10)
	date := utils.DateOnly(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	t.Run("clear hours permit lift-off", func(t *testing.T) {
		fetcher := &stubFetcher{hourly: func(lat, lon float64) (*weatherapi.HourlyEnvelope, error) {
			return clearEnvelope(date), nil
		}}
		gate := NewWeatherGate(repositories.NewForecastRepository(db), fetcher, mem.NewHourlyEnvelopes())

		ok, err := gate.LiftOffPermitted(ctx, airport, date)
		if err != nil {
			t.Fatalf("LiftOffPermitted: %v", err)
		}
		if !ok {
			t.Error("clear envelope should permit lift-off")
		}

		// Second call hits the cache, not the fetcher.
		if _, err := gate.LiftOffPermitted(ctx, airport, date); err != nil {
			t.Fatalf("LiftOffPermitted: %v", err)
		}
		if fetcher.hourlyCalls != 1 {
			t.Errorf("expected 1 hourly fetch, got %d", fetcher.hourlyCalls)
		}
	})

	t.Run("low visibility grounds the day", func(t *testing.T) {
		fetcher := &stubFetcher{hourly: func(lat, lon float64) (*weatherapi.HourlyEnvelope, error) {
			return groundedEnvelope(date), nil
		}}
		gate := NewWeatherGate(repositories.NewForecastRepository(db), fetcher, mem.NewHourlyEnvelopes())

		ok, err := gate.LiftOffPermitted(ctx, airport, date)
		if err != nil {
			t.Fatalf("LiftOffPermitted: %v", err)
		}
		if ok {
			t.Error("an hour below the visibility floor should ground the day")
		}
	})

	t.Run("active alert grounds the day", func(t *testing.T) {
		fetcher := &stubFetcher{hourly: func(lat, lon float64) (*weatherapi.HourlyEnvelope, error) {
			env := clearEnvelope(date)
			env.Alerts = append(env.Alerts, weatherapi.Alert{Event: "storm"})
			return env, nil
		}}
		gate := NewWeatherGate(repositories.NewForecastRepository(db), fetcher, mem.NewHourlyEnvelopes())

		ok, err := gate.LiftOffPermitted(ctx, airport, date)
		if err != nil {
			t.Fatalf("LiftOffPermitted: %v", err)
		}
		if ok {
			t.Error("an active alert should ground the day")
		}
	})
}
