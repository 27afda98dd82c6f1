package controllers_fx

import (
	"go.uber.org/fx"
	"wayfarer/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlannerController),
	fx.Provide(controllers.NewLocationsController),
	fx.Provide(controllers.NewReviewsController),
	fx.Provide(controllers.NewAccountController))
