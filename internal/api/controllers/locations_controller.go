package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type LocationsController struct {
	locationService services.LocationServiceInterface
}

func NewLocationsController(locationService services.LocationServiceInterface) *LocationsController {
	return &LocationsController{
		locationService: locationService,
	}
}

func (l *LocationsController) CreateAirport(c *gin.Context) {
	var req request_models.CreateAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid airport request")
		return
	}

	airport, err := l.locationService.CreateAirport(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, airport, "Airport created successfully")
}

func (l *LocationsController) CreateCity(c *gin.Context) {
	var req request_models.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid city request")
		return
	}

	city, err := l.locationService.CreateCity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, city, "City created successfully")
}

func (l *LocationsController) CreateVenue(c *gin.Context) {
	var req request_models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid venue request")
		return
	}

	venue, err := l.locationService.CreateVenue(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, venue, "Venue created successfully")
}

func (l *LocationsController) ListAirports(c *gin.Context) {
	airports, err := l.locationService.ListAirports(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, airports, "Airports fetched successfully")
}

func (l *LocationsController) ListCities(c *gin.Context) {
	cities, err := l.locationService.ListCities(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Cities fetched successfully")
}

func (l *LocationsController) ListUnvalidated(c *gin.Context) {
	pending, err := l.locationService.ListUnvalidated(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pending, "Pending locations fetched successfully")
}

func (l *LocationsController) ValidateAirport(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, "Airport name is required")
		return
	}

	if err := l.locationService.ValidateAirport(c.Request.Context(), name); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Airport validated successfully")
}

func (l *LocationsController) ValidateCity(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, "City name is required")
		return
	}

	if err := l.locationService.ValidateCity(c.Request.Context(), name); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "City validated successfully")
}
