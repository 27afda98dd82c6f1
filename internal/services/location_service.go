package services

import (
	"context"
	"log"
	"math"

	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/refdata"
	"wayfarer/pkg/utils"
	"wayfarer/pkg/weatherapi"
)

// Coordinate tolerances for validating user-entered locations. The airport
// dataset is authoritative, so its tolerance is tight; geocoding results get
// a forgiving half-degree.
const (
	airportCoordinateTolerance = 0.009
	cityCoordinateTolerance    = 0.5
)

type LocationServiceInterface interface {
	CreateAirport(ctx context.Context, req request_models.CreateAirportRequest) (*response_models.AirportResponse, error)
	CreateCity(ctx context.Context, req request_models.CreateCityRequest) (*response_models.CityResponse, error)
	CreateVenue(ctx context.Context, req request_models.CreateVenueRequest) (*response_models.VenueResponse, error)
	ListAirports(ctx context.Context) ([]response_models.AirportResponse, error)
	ListCities(ctx context.Context) ([]response_models.CityResponse, error)
	ListUnvalidated(ctx context.Context) (*response_models.UnvalidatedLocationsResponse, error)

	// ValidateAirport checks the airport's code and coordinates against the
	// reference dataset; ValidateCity checks the name and coordinates via
	// geocoding.
	ValidateAirport(ctx context.Context, name string) error
	ValidateCity(ctx context.Context, name string) error
}

type LocationService struct {
	airports repositories.AirportRepository
	cities   repositories.CityRepository
	venues   repositories.VenueRepository
	dataset  refdata.AirportDataset
	fetcher  weatherapi.Fetcher
}

func NewLocationService(
	airports repositories.AirportRepository,
	cities repositories.CityRepository,
	venues repositories.VenueRepository,
	dataset refdata.AirportDataset,
	fetcher weatherapi.Fetcher,
) LocationServiceInterface {
	return &LocationService{
		airports: airports,
		cities:   cities,
		venues:   venues,
		dataset:  dataset,
		fetcher:  fetcher,
	}
}

func (l *LocationService) CreateAirport(ctx context.Context, req request_models.CreateAirportRequest) (*response_models.AirportResponse, error) {
	airport := &db_models.Airport{
		Name:      req.Name,
		Code:      req.Code,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := l.airports.Create(ctx, airport); err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	resp := buildAirportResponse(airport)
	return &resp, nil
}

func (l *LocationService) CreateCity(ctx context.Context, req request_models.CreateCityRequest) (*response_models.CityResponse, error) {
	city := &db_models.City{
		Name:      req.Name,
		Region:    req.Region,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	for _, name := range req.AirportNames {
		airport, err := l.airports.FindByName(ctx, name)
		if err != nil {
			return nil, utils.ErrPersistenceUnavailable
		}
		if airport == nil {
			return nil, utils.ErrAirportNotFound
		}
		city.Airports = append(city.Airports, airport)
	}
	if err := l.cities.Create(ctx, city); err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	resp := buildCityResponse(city)
	return &resp, nil
}

func (l *LocationService) CreateVenue(ctx context.Context, req request_models.CreateVenueRequest) (*response_models.VenueResponse, error) {
	city, err := l.cities.FindByName(ctx, req.CityName)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	if city == nil {
		return nil, utils.ErrCityNotFound
	}

	venue := &db_models.Venue{
		Name:      req.Name,
		VenueType: req.VenueType,
		CityID:    city.ID,
	}
	if req.Condition != nil {
		venue.Condition = &db_models.VenueCondition{
			MinTemperature: req.Condition.MinTemperature,
			MaxTemperature: req.Condition.MaxTemperature,
			MinHumidity:    req.Condition.MinHumidity,
			MaxHumidity:    req.Condition.MaxHumidity,
			MaxWindSpeed:   req.Condition.MaxWindSpeed,
		}
	}
	if err := l.venues.Create(ctx, venue); err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	return &response_models.VenueResponse{
		ID:        venue.ID.String(),
		Name:      venue.Name,
		VenueType: venue.VenueType,
		City:      city.Name,
	}, nil
}

func (l *LocationService) ListAirports(ctx context.Context) ([]response_models.AirportResponse, error) {
	airports, err := l.airports.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	out := make([]response_models.AirportResponse, 0, len(airports))
	for i := range airports {
		out = append(out, buildAirportResponse(&airports[i]))
	}
	return out, nil
}

func (l *LocationService) ListCities(ctx context.Context) ([]response_models.CityResponse, error) {
	cities, err := l.cities.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	out := make([]response_models.CityResponse, 0, len(cities))
	for i := range cities {
		out = append(out, buildCityResponse(&cities[i]))
	}
	return out, nil
}

func (l *LocationService) ListUnvalidated(ctx context.Context) (*response_models.UnvalidatedLocationsResponse, error) {
	airports, err := l.airports.ListUnvalidated(ctx)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	cities, err := l.cities.ListUnvalidated(ctx)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	out := &response_models.UnvalidatedLocationsResponse{
		Airports: make([]response_models.AirportResponse, 0, len(airports)),
		Cities:   make([]response_models.CityResponse, 0, len(cities)),
	}
	for i := range airports {
		out.Airports = append(out.Airports, buildAirportResponse(&airports[i]))
	}
	for i := range cities {
		out.Cities = append(out.Cities, buildCityResponse(&cities[i]))
	}
	return out, nil
}

func (l *LocationService) ValidateAirport(ctx context.Context, name string) error {
	airport, err := l.airports.FindByName(ctx, name)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	if airport == nil {
		return utils.ErrAirportNotFound
	}

	record, ok := l.dataset.FindByCode(airport.Code)
	if !ok {
		return utils.ErrLocationNotValid
	}
	if math.Abs(record.Latitude-airport.Latitude) > airportCoordinateTolerance ||
		math.Abs(record.Longitude-airport.Longitude) > airportCoordinateTolerance {
		return utils.ErrLocationNotValid
	}

	airport.Validated = true
	if err := l.airports.Save(ctx, airport); err != nil {
		return utils.ErrPersistenceUnavailable
	}
	return nil
}

func (l *LocationService) ValidateCity(ctx context.Context, name string) error {
	city, err := l.cities.FindByName(ctx, name)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	if city == nil {
		return utils.ErrCityNotFound
	}

	place, err := l.fetcher.GeocodeName(ctx, city.Name)
	if err != nil {
		log.Printf("geocoding %s failed: %v", city.Name, err)
		return utils.ErrFetchFailed
	}
	// The geocoder must corroborate the stored name, not just the area.
	if place.Name != city.Name {
		return utils.ErrLocationNotValid
	}
	if math.Abs(place.Latitude-city.Latitude) > cityCoordinateTolerance ||
		math.Abs(place.Longitude-city.Longitude) > cityCoordinateTolerance {
		return utils.ErrLocationNotValid
	}

	city.Validated = true
	if err := l.cities.Save(ctx, city); err != nil {
		return utils.ErrPersistenceUnavailable
	}
	return nil
}

func buildAirportResponse(a *db_models.Airport) response_models.AirportResponse {
	return response_models.AirportResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Code:      a.Code,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Validated: a.Validated,
	}
}

func buildCityResponse(c *db_models.City) response_models.CityResponse {
	airports := make([]string, 0, len(c.Airports))
	for _, a := range c.Airports {
		airports = append(airports, a.Name)
	}
	return response_models.CityResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Region:    c.Region,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Validated: c.Validated,
		Airports:  airports,
	}
}
