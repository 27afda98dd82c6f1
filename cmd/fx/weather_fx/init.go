package weather_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/weatherapi"
)

var Module = fx.Provide(
	provideFetcher,
	provideEnvelopeStore,
	provideForecastRepo,
	provideForecastService,
	provideWeatherGate)

func provideFetcher() weatherapi.Fetcher {
	return weatherapi.NewOpenWeatherClient()
}

func provideEnvelopeStore() mem.EnvelopeStore {
	return mem.NewHourlyEnvelopes()
}

func provideForecastRepo(db *gorm.DB) repositories.ForecastRepository {
	return repositories.NewForecastRepository(db)
}

func provideForecastService(forecasts repositories.ForecastRepository, fetcher weatherapi.Fetcher) services.ForecastServiceInterface {
	return services.NewForecastService(forecasts, fetcher)
}

func provideWeatherGate(forecasts repositories.ForecastRepository, fetcher weatherapi.Fetcher, envelopes mem.EnvelopeStore) *services.WeatherGate {
	return services.NewWeatherGate(forecasts, fetcher, envelopes)
}
