package services

import (
	"context"
	"errors"
	"testing"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/refdata"
	"wayfarer/pkg/utils"
	"wayfarer/pkg/weatherapi"
)

type fakeDataset map[string]refdata.AirportRecord

func (d fakeDataset) FindByCode(icao string) (refdata.AirportRecord, bool) {
	rec, ok := d[icao]
	return rec, ok
}

func newLocationFixture(t *testing.T, dataset refdata.AirportDataset, fetcher *stubFetcher) (LocationServiceInterface, repositories.AirportRepository, repositories.CityRepository) {
	t.Helper()
	db := newTestDB(t)
	airports := repositories.NewAirportRepository(db)
	cities := repositories.NewCityRepository(db)
	venues := repositories.NewVenueRepository(db)
	svc := NewLocationService(airports, cities, venues, dataset, fetcher)
	return svc, airports, cities
}

func TestValidateAirportAgainstDataset(t *testing.T) {
	dataset := fakeDataset{
		"LPPT": {ICAO: "LPPT", Latitude: 38.7813, Longitude: -9.1359},
	}
	svc, airports, _ := newLocationFixture(t, dataset, &stubFetcher{})
	ctx := context.Background()

	if _, err := svc.CreateAirport(ctx, request_models.CreateAirportRequest{
		Name: "Lisbon Humberto Delgado", Code: "LPPT", Latitude: 38.7813, Longitude: -9.1359,
	}); err != nil {
		t.Fatalf("CreateAirport: %v", err)
	}

	if err := svc.ValidateAirport(ctx, "Lisbon Humberto Delgado"); err != nil {
		t.Fatalf("ValidateAirport: %v", err)
	}
	airport, err := airports.FindByName(ctx, "Lisbon Humberto Delgado")
	if err != nil {
		t.Fatalf("reload airport: %v", err)
	}
	if !airport.Validated {
		t.Error("airport matching the dataset should be validated")
	}
}

func TestValidateAirportRejectsBadCoordinates(t *testing.T) {
	dataset := fakeDataset{
		"LPPT": {ICAO: "LPPT", Latitude: 38.7813, Longitude: -9.1359},
	}
	svc, _, _ := newLocationFixture(t, dataset, &stubFetcher{})
	ctx := context.Background()

	// Coordinates off by a tenth of a degree, well past the tolerance.
	if _, err := svc.CreateAirport(ctx, request_models.CreateAirportRequest{
		Name: "Lisbon Humberto Delgado", Code: "LPPT", Latitude: 38.88, Longitude: -9.1359,
	}); err != nil {
		t.Fatalf("CreateAirport: %v", err)
	}
	if err := svc.ValidateAirport(ctx, "Lisbon Humberto Delgado"); !errors.Is(err, utils.ErrLocationNotValid) {
		t.Errorf("expected ErrLocationNotValid, got %v", err)
	}

	// Unknown code is also invalid.
	if _, err := svc.CreateAirport(ctx, request_models.CreateAirportRequest{
		Name: "Imaginary Field", Code: "XXXX", Latitude: 10, Longitude: 10,
	}); err != nil {
		t.Fatalf("CreateAirport: %v", err)
	}
	if err := svc.ValidateAirport(ctx, "Imaginary Field"); !errors.Is(err, utils.ErrLocationNotValid) {
		t.Errorf("expected ErrLocationNotValid for unknown code, got %v", err)
	}
}

func TestValidateCityViaGeocoding(t *testing.T) {
	fetcher := &stubFetcher{geocode: func(name string) (weatherapi.GeocodedPlace, error) {
		return weatherapi.GeocodedPlace{Name: name, Latitude: 38.72, Longitude: -9.14}, nil
	}}
	svc, _, cities := newLocationFixture(t, fakeDataset{}, fetcher)
	ctx := context.Background()

	if _, err := svc.CreateCity(ctx, request_models.CreateCityRequest{
		Name: "Lisbon", Latitude: 38.7, Longitude: -9.1,
	}); err != nil {
		t.Fatalf("CreateCity: %v", err)
	}

	if err := svc.ValidateCity(ctx, "Lisbon"); err != nil {
		t.Fatalf("ValidateCity: %v", err)
	}
	city, err := cities.FindByName(ctx, "Lisbon")
	if err != nil {
		t.Fatalf("reload city: %v", err)
	}
	if !city.Validated {
		t.Error("city within geocoding tolerance should be validated")
	}

	// A city whose stored coordinates are far from the geocoded point fails.
	if _, err := svc.CreateCity(ctx, request_models.CreateCityRequest{
		Name: "Misplaced", Latitude: 45, Longitude: 20,
	}); err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if err := svc.ValidateCity(ctx, "Misplaced"); !errors.Is(err, utils.ErrLocationNotValid) {
		t.Errorf("expected ErrLocationNotValid, got %v", err)
	}
}

func TestValidateCityRejectsGeocodedNameMismatch(t *testing.T) {
	fetcher := &stubFetcher{geocode: func(name string) (weatherapi.GeocodedPlace, error) {
		return weatherapi.GeocodedPlace{Name: "Springfield", Latitude: 38.7, Longitude: -9.1}, nil
	}}
	svc, _, cities := newLocationFixture(t, fakeDataset{}, fetcher)
	ctx := context.Background()

	if _, err := svc.CreateCity(ctx, request_models.CreateCityRequest{
		Name: "Springfeld", Latitude: 38.7, Longitude: -9.1,
	}); err != nil {
		t.Fatalf("CreateCity: %v", err)
	}

	// Coordinates agree exactly; the geocoded place name does not.
	if err := svc.ValidateCity(ctx, "Springfeld"); !errors.Is(err, utils.ErrLocationNotValid) {
		t.Errorf("expected ErrLocationNotValid, got %v", err)
	}
	city, err := cities.FindByName(ctx, "Springfeld")
	if err != nil {
		t.Fatalf("reload city: %v", err)
	}
	if city.Validated {
		t.Error("city must stay unvalidated when the geocoder does not corroborate its name")
	}
}

func TestListUnvalidatedDropsValidatedLocations(t *testing.T) {
	dataset := fakeDataset{
		"LPPT": {ICAO: "LPPT", Latitude: 38.7813, Longitude: -9.1359},
	}
	svc, _, _ := newLocationFixture(t, dataset, &stubFetcher{})
	ctx := context.Background()

	if _, err := svc.CreateAirport(ctx, request_models.CreateAirportRequest{
		Name: "Lisbon Humberto Delgado", Code: "LPPT", Latitude: 38.7813, Longitude: -9.1359,
	}); err != nil {
		t.Fatalf("CreateAirport: %v", err)
	}
	if _, err := svc.CreateCity(ctx, request_models.CreateCityRequest{
		Name: "Lisbon", Latitude: 38.7, Longitude: -9.1,
	}); err != nil {
		t.Fatalf("CreateCity: %v", err)
	}

	pending, err := svc.ListUnvalidated(ctx)
	if err != nil {
		t.Fatalf("ListUnvalidated: %v", err)
	}
	if len(pending.Airports) != 1 || len(pending.Cities) != 1 {
		t.Fatalf("expected one pending airport and city, got %d/%d", len(pending.Airports), len(pending.Cities))
	}

	if err := svc.ValidateAirport(ctx, "Lisbon Humberto Delgado"); err != nil {
		t.Fatalf("ValidateAirport: %v", err)
	}
	pending, err = svc.ListUnvalidated(ctx)
	if err != nil {
		t.Fatalf("ListUnvalidated: %v", err)
	}
	if len(pending.Airports) != 0 {
		t.Errorf("validated airport still listed as pending: %+v", pending.Airports)
	}
	if len(pending.Cities) != 1 {
		t.Errorf("expected the city to stay pending, got %+v", pending.Cities)
	}
}

func TestCreateCityLinksAirports(t *testing.T) {
	svc, _, cities := newLocationFixture(t, fakeDataset{}, &stubFetcher{})
	ctx := context.Background()

	if _, err := svc.CreateAirport(ctx, request_models.CreateAirportRequest{
		Name: "Lisbon Humberto Delgado", Code: "LPPT", Latitude: 38.78, Longitude: -9.13,
	}); err != nil {
		t.Fatalf("CreateAirport: %v", err)
	}

	resp, err := svc.CreateCity(ctx, request_models.CreateCityRequest{
		Name: "Lisbon", Latitude: 38.7, Longitude: -9.1,
		AirportNames: []string{"Lisbon Humberto Delgado"},
	})
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if len(resp.Airports) != 1 {
		t.Fatalf("expected 1 linked airport in response, got %+v", resp.Airports)
	}

	city, err := cities.FindByName(ctx, "Lisbon")
	if err != nil {
		t.Fatalf("reload city: %v", err)
	}
	if len(city.Airports) != 1 || city.Airports[0].Name != "Lisbon Humberto Delgado" {
		t.Errorf("city not linked to airport: %+v", city.Airports)
	}

	// Linking to a missing airport fails the whole create.
	if _, err := svc.CreateCity(ctx, request_models.CreateCityRequest{
		Name: "Porto", AirportNames: []string{"Nowhere"},
	}); !errors.Is(err, utils.ErrAirportNotFound) {
		t.Errorf("expected ErrAirportNotFound, got %v", err)
	}
}
