package services

import (
	"context"

	"github.com/google/uuid"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, req request_models.CreateReviewRequest) (*response_models.ReviewResponse, error)
	ListUnvalidated(ctx context.Context) ([]response_models.ReviewResponse, error)

	// Moderate accepts or rejects a pending review. Accepting folds the score
	// into the venue's running average; rejecting deletes the review.
	Moderate(ctx context.Context, reviewID uuid.UUID, accept bool) error
}

type ReviewService struct {
	reviews repositories.ReviewRepository
	venues  repositories.VenueRepository
}

func NewReviewService(reviews repositories.ReviewRepository, venues repositories.VenueRepository) ReviewServiceInterface {
	return &ReviewService{
		reviews: reviews,
		venues:  venues,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, req request_models.CreateReviewRequest) (*response_models.ReviewResponse, error) {
	venue, err := s.venues.FindByName(ctx, req.VenueName)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}
	if venue == nil {
		return nil, utils.ErrVenueNotFound
	}

	review := &db_models.Review{
		VenueID: venue.ID,
		Score:   req.Score,
		Comment: req.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	venue.ScoreNeedsUpdate = true
	if err := s.venues.Save(ctx, venue); err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	return &response_models.ReviewResponse{
		ID:      review.ID.String(),
		Venue:   venue.Name,
		Score:   review.Score,
		Comment: review.Comment,
	}, nil
}

func (s *ReviewService) ListUnvalidated(ctx context.Context) ([]response_models.ReviewResponse, error) {
	reviews, err := s.reviews.ListUnvalidated(ctx)
	if err != nil {
		return nil, utils.ErrPersistenceUnavailable
	}

	out := make([]response_models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		venueName := ""
		if venue, err := s.venues.FindByID(ctx, review.VenueID); err == nil && venue != nil {
			venueName = venue.Name
		}
		out = append(out, response_models.ReviewResponse{
			ID:      review.ID.String(),
			Venue:   venueName,
			Score:   review.Score,
			Comment: review.Comment,
		})
	}
	return out, nil
}

func (s *ReviewService) Moderate(ctx context.Context, reviewID uuid.UUID, accept bool) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	if review == nil {
		return utils.ErrReviewNotFound
	}

	if !accept {
		if err := s.reviews.Delete(ctx, review); err != nil {
			return utils.ErrPersistenceUnavailable
		}
		return nil
	}

	venue, err := s.venues.FindByID(ctx, review.VenueID)
	if err != nil {
		return utils.ErrPersistenceUnavailable
	}
	if venue == nil {
		return utils.ErrVenueNotFound
	}

	average := foldScore(venue, review.Score)
	venue.AverageScore = &average
	venue.ScoreNeedsUpdate = false
	if err := s.venues.Save(ctx, venue); err != nil {
		return utils.ErrPersistenceUnavailable
	}

	review.Validated = true
	if err := s.reviews.Save(ctx, review); err != nil {
		return utils.ErrPersistenceUnavailable
	}
	return nil
}

// foldScore computes the new running average from the count of already
// accepted reviews.
func foldScore(venue *db_models.Venue, score float64) float64 {
	if venue.AverageScore == nil {
		return score
	}
	accepted := 0
	for _, r := range venue.Reviews {
		if r.Validated {
			accepted++
		}
	}
	if accepted == 0 {
		return score
	}
	average := *venue.AverageScore
	return (float64(accepted)*average + score) / float64(accepted+1)
}
