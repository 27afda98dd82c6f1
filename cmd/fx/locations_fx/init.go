package locations_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/refdata"
	"wayfarer/pkg/weatherapi"
)

var Module = fx.Provide(
	provideAirportRepo,
	provideCityRepo,
	provideVenueRepo,
	provideAirportDataset,
	provideLocationService)

func provideAirportRepo(db *gorm.DB) repositories.AirportRepository {
	return repositories.NewAirportRepository(db)
}

func provideCityRepo(db *gorm.DB) repositories.CityRepository {
	return repositories.NewCityRepository(db)
}

func provideVenueRepo(db *gorm.DB) repositories.VenueRepository {
	return repositories.NewVenueRepository(db)
}

func provideAirportDataset() refdata.AirportDataset {
	path := os.Getenv("AIRPORT_DATASET_PATH")
	dataset, err := refdata.LoadAirports(path)
	if err != nil {
		log.Fatalf("failed to load airport dataset from %s: %v", path, err)
	}
	return dataset
}

func provideLocationService(
	airports repositories.AirportRepository,
	cities repositories.CityRepository,
	venues repositories.VenueRepository,
	dataset refdata.AirportDataset,
	fetcher weatherapi.Fetcher,
) services.LocationServiceInterface {
	return services.NewLocationService(airports, cities, venues, dataset, fetcher)
}
