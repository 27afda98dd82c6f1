package request_models

type CreateReviewRequest struct {
	VenueName string  `json:"venue_name" binding:"required"`
	Score     float64 `json:"score" binding:"required"`
	Comment   string  `json:"comment"`
}

type ModerateReviewRequest struct {
	ReviewID string `json:"review_id" binding:"required"`
	Accept   bool   `json:"accept"`
}
