package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type ReviewsController struct {
	reviewService services.ReviewServiceInterface
}

func NewReviewsController(reviewService services.ReviewServiceInterface) *ReviewsController {
	return &ReviewsController{
		reviewService: reviewService,
	}
}

func (r *ReviewsController) CreateReview(c *gin.Context) {
	var req request_models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid review request")
		return
	}

	review, err := r.reviewService.CreateReview(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, review, "Review submitted for moderation")
}

func (r *ReviewsController) ListUnvalidated(c *gin.Context) {
	reviews, err := r.reviewService.ListUnvalidated(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Pending reviews fetched successfully")
}

func (r *ReviewsController) Moderate(c *gin.Context) {
	var req request_models.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid moderation request")
		return
	}

	reviewID, err := uuid.Parse(req.ReviewID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := r.reviewService.Moderate(c.Request.Context(), reviewID, req.Accept); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Review moderated successfully")
}
