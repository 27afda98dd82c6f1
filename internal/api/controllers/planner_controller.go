package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type PlannerController struct {
	plannerService services.PlannerServiceInterface
}

func NewPlannerController(plannerService services.PlannerServiceInterface) *PlannerController {
	return &PlannerController{
		plannerService: plannerService,
	}
}

func (p *PlannerController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip request")
		return
	}

	trip, err := p.plannerService.CreateTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip created successfully")
}

func (p *PlannerController) Step(c *gin.Context) {
	tripID, ok := tripIDParam(c)
	if !ok {
		return
	}

	result, err := p.plannerService.Step(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Scheduler step completed")
}

func (p *PlannerController) GetTracks(c *gin.Context) {
	tripID, ok := tripIDParam(c)
	if !ok {
		return
	}

	tracks, err := p.plannerService.GetTracks(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tracks, "Tracks fetched successfully")
}

func (p *PlannerController) SelectDay(c *gin.Context) {
	tripID, ok := tripIDParam(c)
	if !ok {
		return
	}

	var req request_models.SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid selection request")
		return
	}

	itineraryID, err := uuid.Parse(req.ItineraryID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary ID")
		return
	}

	if err := p.plannerService.SelectDay(c.Request.Context(), tripID, itineraryID, req.Selected); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Selection updated")
}

func (p *PlannerController) CurrentLocation(c *gin.Context) {
	tripID, ok := tripIDParam(c)
	if !ok {
		return
	}

	location, err := p.plannerService.CurrentLocation(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, location, "Current location fetched successfully")
}

func (p *PlannerController) PastItineraries(c *gin.Context) {
	tripID, ok := tripIDParam(c)
	if !ok {
		return
	}

	past, err := p.plannerService.PastItineraries(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, past, "Past itineraries fetched successfully")
}

func tripIDParam(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	if raw == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return uuid.Nil, false
	}
	tripID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip ID")
		return uuid.Nil, false
	}
	return tripID, true
}
