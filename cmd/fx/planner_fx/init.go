package planner_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var Module = fx.Provide(
	provideItineraryRepo,
	provideSessionRegistry,
	provideMeridianPolicy,
	provideScorer,
	provideCandidateSelector,
	provideVenuePicker,
	providePlannerService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideSessionRegistry() *services.SessionRegistry {
	return services.NewSessionRegistry()
}

func provideMeridianPolicy() *services.MeridianPolicy {
	return services.NewMeridianPolicy()
}

func provideScorer(forecasts services.ForecastServiceInterface, meridian *services.MeridianPolicy) *services.DestinationScorer {
	return services.NewDestinationScorer(forecasts, meridian)
}

func provideCandidateSelector(airports repositories.AirportRepository, gate *services.WeatherGate) services.CandidateSelectorInterface {
	return services.NewCandidateSelector(airports, gate)
}

func provideVenuePicker() *services.VenuePicker {
	return services.NewVenuePicker()
}

func providePlannerService(
	sessions *services.SessionRegistry,
	airports repositories.AirportRepository,
	itineraries repositories.ItineraryRepository,
	forecasts services.ForecastServiceInterface,
	candidates services.CandidateSelectorInterface,
	picker *services.VenuePicker,
	gate *services.WeatherGate,
	scorer *services.DestinationScorer,
) services.PlannerServiceInterface {
	return services.NewPlannerService(sessions, airports, itineraries, forecasts, candidates, picker, gate, scorer)
}
