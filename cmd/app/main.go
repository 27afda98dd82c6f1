package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"wayfarer/cmd/fx/account_fx"
	"wayfarer/cmd/fx/controllers_fx"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/cmd/fx/locations_fx"
	"wayfarer/cmd/fx/planner_fx"
	"wayfarer/cmd/fx/reviews_fx"
	"wayfarer/cmd/fx/weather_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		weather_fx.Module,
		locations_fx.Module,
		planner_fx.Module,
		reviews_fx.Module,
		account_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	plannerController *controllers.PlannerController,
	locationsController *controllers.LocationsController,
	reviewsController *controllers.ReviewsController,
	accountController *controllers.AccountController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, plannerController, locationsController, reviewsController, accountController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	plannerController *controllers.PlannerController,
	locationsController *controllers.LocationsController,
	reviewsController *controllers.ReviewsController,
	accountController *controllers.AccountController) {

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)

	plannerGroup := r.Group("/planner", middleware.JWTAuthMiddleware())
	plannerGroup.POST("/trips", plannerController.CreateTrip)
	plannerGroup.POST("/trips/:id/step", plannerController.Step)
	plannerGroup.GET("/trips/:id/itineraries", plannerController.GetTracks)
	plannerGroup.POST("/trips/:id/select", plannerController.SelectDay)
	plannerGroup.GET("/trips/:id/current-location", plannerController.CurrentLocation)
	plannerGroup.GET("/trips/:id/past", plannerController.PastItineraries)

	locationsGroup := r.Group("/locations")
	locationsGroup.GET("/airports", locationsController.ListAirports)
	locationsGroup.GET("/cities", locationsController.ListCities)
	locationsGroup.POST("/airports", middleware.JWTAuthMiddleware(), locationsController.CreateAirport)
	locationsGroup.POST("/cities", middleware.JWTAuthMiddleware(), locationsController.CreateCity)
	locationsGroup.POST("/venues", middleware.JWTAuthMiddleware(), locationsController.CreateVenue)
	locationsGroup.GET("/pending", middleware.JWTAuthMiddleware(), locationsController.ListUnvalidated)
	locationsGroup.POST("/airports/:name/validate", middleware.JWTAuthMiddleware(), locationsController.ValidateAirport)
	locationsGroup.POST("/cities/:name/validate", middleware.JWTAuthMiddleware(), locationsController.ValidateCity)

	reviewsGroup := r.Group("/reviews")
	reviewsGroup.POST("", middleware.JWTAuthMiddleware(), reviewsController.CreateReview)
	reviewsGroup.GET("/pending", middleware.JWTAuthMiddleware(), reviewsController.ListUnvalidated)
	reviewsGroup.POST("/moderate", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"), reviewsController.Moderate)
}
