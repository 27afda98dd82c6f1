package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID, _ := c.Get("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID.(string),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID, _ := c.Get("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID.(string),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrAirportNotFound),
		errors.Is(err, ErrCityNotFound),
		errors.Is(err, ErrVenueNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrItineraryNotFound),
		errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrLocationNotValid):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrStepInProgress):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrFetchFailed), errors.Is(err, ErrNoCandidateAirports),
		errors.Is(err, ErrInvalidItineraryState):
		// Step-level planning failures: nothing was committed, caller may retry.
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrPersistenceUnavailable):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
