package reviews_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
)

var Module = fx.Provide(
	provideReviewRepo,
	provideReviewService)

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepository {
	return repositories.NewReviewRepository(db)
}

func provideReviewService(reviews repositories.ReviewRepository, venues repositories.VenueRepository) services.ReviewServiceInterface {
	return services.NewReviewService(reviews, venues)
}
