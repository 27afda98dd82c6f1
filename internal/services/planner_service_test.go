package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/repositories"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
	"wayfarer/pkg/weatherapi"
)

func newTestPlanner(t *testing.T, db *gorm.DB, fetcher *stubFetcher) (PlannerServiceInterface, *SessionRegistry) {
	t.Helper()
	registry := NewSessionRegistry()
	airports := repositories.NewAirportRepository(db)
	itineraries := repositories.NewItineraryRepository(db)
	forecastRepo := repositories.NewForecastRepository(db)
	forecasts := NewForecastService(forecastRepo, fetcher)
	gate := NewWeatherGate(forecastRepo, fetcher, mem.NewHourlyEnvelopes())
	candidates := NewCandidateSelector(airports, gate)
	scorer := NewDestinationScorer(forecasts, NewMeridianPolicy())

	planner := NewPlannerService(registry, airports, itineraries, forecasts, candidates, NewVenuePicker(), gate, scorer)
	return planner, registry
}

// seedWorld creates three nearby airports, each with a city holding an
// outdoor restaurant, so both tracks always have somewhere to go.
func seedWorld(t *testing.T, db *gorm.DB) {
	t.Helper()
	alpha := seedAirport(t, db, "Alpha", "AAAA", 40, 10)
	bravo := seedAirport(t, db, "Bravo", "BBBB", 41, 12)
	charlie := seedAirport(t, db, "Charlie", "CCCC", 39, 14)

	for _, loc := range []struct {
		airport *db_models.Airport
		city    string
		venue   string
	}{
		{alpha, "Alphaville", "alpha terrace"},
		{bravo, "Bravotown", "bravo terrace"},
		{charlie, "Charlieburg", "charlie terrace"},
	} {
		city := seedCity(t, db, loc.city, loc.airport.Latitude, loc.airport.Longitude, loc.airport)
		seedVenue(t, db, city, loc.venue, db_models.VenueOutdoorRestaurant, nil)
	}
}

func planningFetcher(start time.Time) *stubFetcher {
	return &stubFetcher{
		daily: func(lat, lon float64) ([]weatherapi.DailyForecast, error) {
			return comfortableDays(start, 12), nil
		},
		hourly: func(lat, lon float64) (*weatherapi.HourlyEnvelope, error) {
			return clearEnvelope(start), nil
		},
	}
}

func TestStepFillsBothTracksToHorizon(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db)
	start := utils.DateOnly(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	planner, _ := newTestPlanner(t, db, planningFetcher(start))
	ctx := context.Background()

	trip, err := planner.CreateTrip(ctx, request_models.CreateTripRequest{
		FinalDestination: "Alpha",
		StartDate:        "2026-03-15",
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	tripID := uuid.MustParse(trip.TripID)

	step, err := planner.Step(ctx, tripID)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if step.State != StepAdvanced {
		t.Errorf("expected advanced, got %s (warnings: %v)", step.State, step.Warnings)
	}
	if step.NewDays != 2*horizonDays {
		t.Errorf("expected %d new days, got %d", 2*horizonDays, step.NewDays)
	}
	if step.CurrentDate != utils.FormatDate(start.AddDate(0, 0, 1)) {
		t.Errorf("date should advance when no day is planned for today, got %s", step.CurrentDate)
	}

	tracks, err := planner.GetTracks(ctx, tripID)
	if err != nil {
		t.Fatalf("GetTracks: %v", err)
	}
	if len(tracks.Closest) != horizonDays || len(tracks.Entertainment) != horizonDays {
		t.Fatalf("expected %d days per track, got %d/%d", horizonDays, len(tracks.Closest), len(tracks.Entertainment))
	}

	// Days run from start+1 through start+horizon and are chained by city.
	first := tracks.Closest[0]
	if first.Date != utils.FormatDate(start.AddDate(0, 0, 1)) {
		t.Errorf("first planned day should be tomorrow, got %s", first.Date)
	}
	for i := 0; i+1 < len(tracks.Closest); i++ {
		if tracks.Closest[i].NextCity != tracks.Closest[i+1].City {
			t.Errorf("day %d should link to the next day's city: %q vs %q",
				i, tracks.Closest[i].NextCity, tracks.Closest[i+1].City)
		}
	}
	for _, day := range tracks.Closest {
		if day.ArriveAt == "Alpha" && day.Date == first.Date {
			t.Error("first hop must leave the start airport")
		}
		if len(day.Venues) == 0 {
			t.Errorf("day %s has no venues", day.Date)
		}
	}
}

func TestStepAdvanceDiscardsUnselectedAndKeepsSelected(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db)
	start := utils.DateOnly(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	planner, _ := newTestPlanner(t, db, planningFetcher(start))
	ctx := context.Background()

	trip, err := planner.CreateTrip(ctx, request_models.CreateTripRequest{
		FinalDestination: "Alpha",
		StartDate:        "2026-03-15",
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	tripID := uuid.MustParse(trip.TripID)

	if _, err := planner.Step(ctx, tripID); err != nil {
		t.Fatalf("first step: %v", err)
	}

	tracks, err := planner.GetTracks(ctx, tripID)
	if err != nil {
		t.Fatalf("GetTracks: %v", err)
	}
	// Mark the first closest-track day as the traveler's choice.
	chosen := uuid.MustParse(tracks.Closest[0].ID)
	if err := planner.SelectDay(ctx, tripID, chosen, true); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}

	step, err := planner.Step(ctx, tripID)
	if err != nil {
		t.Fatalf("second step: %v", err)
	}
	if step.State != StepAdvanced {
		t.Fatalf("expected advanced, got %s (warnings: %v)", step.State, step.Warnings)
	}

	past, err := planner.PastItineraries(ctx, tripID)
	if err != nil {
		t.Fatalf("PastItineraries: %v", err)
	}
	if len(past) != 1 {
		t.Fatalf("expected exactly the selected day in history, got %d", len(past))
	}
	if past[0].Track != db_models.TrackPast || !past[0].Selected {
		t.Errorf("history day not converted: %+v", past[0])
	}

	// The unselected entertainment day for the same date is gone.
	tracks, err = planner.GetTracks(ctx, tripID)
	if err != nil {
		t.Fatalf("GetTracks: %v", err)
	}
	yesterday := utils.FormatDate(start.AddDate(0, 0, 1))
	for _, day := range append(tracks.Closest, tracks.Entertainment...) {
		if day.Date == yesterday {
			t.Errorf("unselected day for %s should have been discarded", yesterday)
		}
	}
}

func TestStepPostponesWhenGrounded(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db)
	start := utils.DateOnly(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	fetcher := planningFetcher(start)
	planner, _ := newTestPlanner(t, db, fetcher)
	ctx := context.Background()

	trip, err := planner.CreateTrip(ctx, request_models.CreateTripRequest{
		FinalDestination: "Alpha",
		StartDate:        "2026-03-15",
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	tripID := uuid.MustParse(trip.TripID)

	if _, err := planner.Step(ctx, tripID); err != nil {
		t.Fatalf("first step: %v", err)
	}

	// Ground departures for today and the day after, so the shifted days
	// stay grounded when they are gated again.
	today := start.AddDate(0, 0, 1)
	fetcher.hourly = func(lat, lon float64) (*weatherapi.HourlyEnvelope, error) {
		env := groundedEnvelope(today)
		env.Hours = append(env.Hours, groundedEnvelope(today.AddDate(0, 0, 1)).Hours...)
		return env, nil
	}

	step, err := planner.Step(ctx, tripID)
	if err != nil {
		t.Fatalf("second step: %v", err)
	}
	if step.State != StepPostponed {
		t.Fatalf("expected postponed, got %s (warnings: %v)", step.State, step.Warnings)
	}
	if step.CurrentDate != utils.FormatDate(today.AddDate(0, 0, 1)) {
		t.Errorf("the current date should follow the shifted days, got %s", step.CurrentDate)
	}

	// Every pending day moved one day out with the current date, so nothing
	// stays planned for the grounded date.
	tracks, err := planner.GetTracks(ctx, tripID)
	if err != nil {
		t.Fatalf("GetTracks: %v", err)
	}
	for _, day := range append(tracks.Closest, tracks.Entertainment...) {
		if day.Date == utils.FormatDate(today) {
			t.Errorf("pending day still scheduled for the grounded date: %+v", day)
		}
	}
	if len(tracks.Closest) == 0 || tracks.Closest[0].Date != utils.FormatDate(today.AddDate(0, 0, 1)) {
		t.Errorf("pending days should start the day after the grounded date")
	}

	// The next trigger gates the shifted days on their new date right away
	// and postpones again while they stay grounded.
	step, err = planner.Step(ctx, tripID)
	if err != nil {
		t.Fatalf("third step: %v", err)
	}
	if step.State != StepPostponed {
		t.Fatalf("expected the shifted days to be gated and postponed again, got %s (warnings: %v)", step.State, step.Warnings)
	}
	if step.CurrentDate != utils.FormatDate(today.AddDate(0, 0, 2)) {
		t.Errorf("second postponement should move the date again, got %s", step.CurrentDate)
	}
}

func TestStepReportsSkippedDays(t *testing.T) {
	db := newTestDB(t)
	// The only reachable airport has no city, so every day fails to build.
	alpha := seedAirport(t, db, "Alpha", "AAAA", 40, 10)
	seedAirport(t, db, "Nocity", "NNNN", 41, 12)
	seedVenue(t, db, seedCity(t, db, "Alphaville", 40, 10, alpha), "alpha terrace", db_models.VenueOutdoorRestaurant, nil)

	planner, _ := newTestPlanner(t, db, &stubFetcher{})
	ctx := context.Background()

	trip, err := planner.CreateTrip(ctx, request_models.CreateTripRequest{
		FinalDestination: "Alpha",
		StartDate:        "2026-03-15",
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	step, err := planner.Step(ctx, uuid.MustParse(trip.TripID))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if step.NewDays != 0 {
		t.Errorf("no day should be buildable, got %d", step.NewDays)
	}
	if len(step.Warnings) != 2*horizonDays {
		t.Fatalf("expected a warning per skipped day on each track, got %d: %v", len(step.Warnings), step.Warnings)
	}
	for _, w := range step.Warnings {
		if !strings.Contains(w, "skipped") {
			t.Errorf("warning does not report the skipped day: %q", w)
		}
	}
}

func TestStepSingleFlight(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db)
	start := utils.DateOnly(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	planner, registry := newTestPlanner(t, db, planningFetcher(start))
	ctx := context.Background()

	trip, err := planner.CreateTrip(ctx, request_models.CreateTripRequest{
		FinalDestination: "Alpha",
		StartDate:        "2026-03-15",
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	tripID := uuid.MustParse(trip.TripID)

	s := registry.Get(tripID)
	if !s.TryLock() {
		t.Fatal("fresh session should lock")
	}
	defer s.Unlock()

	if _, err := planner.Step(ctx, tripID); !errors.Is(err, utils.ErrStepInProgress) {
		t.Errorf("expected ErrStepInProgress while a step holds the session, got %v", err)
	}
}

func TestCreateTripUnknownAirport(t *testing.T) {
	db := newTestDB(t)
	planner, _ := newTestPlanner(t, db, &stubFetcher{})

	_, err := planner.CreateTrip(context.Background(), request_models.CreateTripRequest{
		FinalDestination: "Nowhere",
	})
	if !errors.Is(err, utils.ErrAirportNotFound) {
		t.Errorf("expected ErrAirportNotFound, got %v", err)
	}
}

func TestStepUnknownTrip(t *testing.T) {
	db := newTestDB(t)
	planner, _ := newTestPlanner(t, db, &stubFetcher{})

	if _, err := planner.Step(context.Background(), uuid.New()); !errors.Is(err, utils.ErrTripNotFound) {
		t.Errorf("expected ErrTripNotFound, got %v", err)
	}
}

func TestCurrentLocation(t *testing.T) {
	db := newTestDB(t)
	seedWorld(t, db)
	start := utils.DateOnly(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	planner, _ := newTestPlanner(t, db, planningFetcher(start))
	ctx := context.Background()

	trip, err := planner.CreateTrip(ctx, request_models.CreateTripRequest{
		FinalDestination: "Alpha",
		StartDate:        "2026-03-15",
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	tripID := uuid.MustParse(trip.TripID)

	// Nothing planned for today yet.
	if _, err := planner.CurrentLocation(ctx, tripID); !errors.Is(err, utils.ErrItineraryNotFound) {
		t.Errorf("expected ErrItineraryNotFound before planning, got %v", err)
	}

	if _, err := planner.Step(ctx, tripID); err != nil {
		t.Fatalf("Step: %v", err)
	}

	location, err := planner.CurrentLocation(ctx, tripID)
	if err != nil {
		t.Fatalf("CurrentLocation: %v", err)
	}
	if location.Airport == "" {
		t.Error("current location should name an airport")
	}
}
