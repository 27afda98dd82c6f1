package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"wayfarer/internal/infra"
	"wayfarer/internal/models/db_models"
	"wayfarer/pkg/weatherapi"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// stubFetcher lets each test script the outbound weather calls.
type stubFetcher struct {
	daily   func(lat, lon float64) ([]weatherapi.DailyForecast, error)
	hourly  func(lat, lon float64) (*weatherapi.HourlyEnvelope, error)
	geocode func(name string) (weatherapi.GeocodedPlace, error)

	dailyCalls  int
	hourlyCalls int
}

func (s *stubFetcher) FetchDaily(_ context.Context, lat, lon float64) ([]weatherapi.DailyForecast, error) {
	s.dailyCalls++
	if s.daily == nil {
		return nil, errors.New("unexpected daily fetch")
	}
	return s.daily(lat, lon)
}

func (s *stubFetcher) FetchHourly(_ context.Context, lat, lon float64) (*weatherapi.HourlyEnvelope, error) {
	s.hourlyCalls++
	if s.hourly == nil {
		return nil, errors.New("unexpected hourly fetch")
	}
	return s.hourly(lat, lon)
}

func (s *stubFetcher) GeocodeName(_ context.Context, name string) (weatherapi.GeocodedPlace, error) {
	if s.geocode == nil {
		return weatherapi.GeocodedPlace{}, errors.New("unexpected geocode")
	}
	return s.geocode(name)
}

// comfortableDays returns daily forecasts from base for n days that pass the
// comfort rule and keep every venue without a condition open.
func comfortableDays(base time.Time, n int) []weatherapi.DailyForecast {
	days := make([]weatherapi.DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, weatherapi.DailyForecast{
			Date:           base.AddDate(0, 0, i),
			MaxTemperature: 35,
			MinTemperature: 20,
			Humidity:       50,
			WindSpeed:      5,
		})
	}
	return days
}

func clearEnvelope(date time.Time) *weatherapi.HourlyEnvelope {
	return &weatherapi.HourlyEnvelope{
		Hours: []weatherapi.HourlyForecast{
			{Time: date.Add(9 * time.Hour), Visibility: 10000},
			{Time: date.Add(15 * time.Hour), Visibility: 10000},
		},
	}
}

func groundedEnvelope(date time.Time) *weatherapi.HourlyEnvelope {
	return &weatherapi.HourlyEnvelope{
		Hours: []weatherapi.HourlyForecast{
			{Time: date.Add(9 * time.Hour), Visibility: 800},
		},
	}
}

func seedAirport(t *testing.T, db *gorm.DB, name, code string, lat, lon float64) *db_models.Airport {
	t.Helper()
	airport := &db_models.Airport{
		Name:      name,
		Code:      code,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := db.Create(airport).Error; err != nil {
		t.Fatalf("failed to seed airport %s: %v", name, err)
	}
	return airport
}

func seedCity(t *testing.T, db *gorm.DB, name string, lat, lon float64, airports ...*db_models.Airport) *db_models.City {
	t.Helper()
	city := &db_models.City{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Airports:  airports,
	}
	if err := db.Create(city).Error; err != nil {
		t.Fatalf("failed to seed city %s: %v", name, err)
	}
	return city
}

func seedVenue(t *testing.T, db *gorm.DB, city *db_models.City, name, venueType string, condition *db_models.VenueCondition) *db_models.Venue {
	t.Helper()
	venue := &db_models.Venue{
		Name:      name,
		VenueType: venueType,
		CityID:    city.ID,
		Condition: condition,
	}
	if err := db.Create(venue).Error; err != nil {
		t.Fatalf("failed to seed venue %s: %v", name, err)
	}
	return venue
}

func comfortableForecast() *db_models.Forecast {
	return &db_models.Forecast{
		MaxTemperature: 35,
		MaxHumidity:    50,
		MaxWindSpeed:   5,
		Visibility:     10,
	}
}
