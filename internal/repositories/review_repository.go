package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *db_models.Review) error
	Save(ctx context.Context, review *db_models.Review) error
	Delete(ctx context.Context, review *db_models.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Review, error)
	ListUnvalidated(ctx context.Context) ([]db_models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{
		db: db,
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Save(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Delete(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Review, error) {
	var review db_models.Review
	err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &review, nil
}

func (r *reviewRepository) ListUnvalidated(ctx context.Context) ([]db_models.Review, error) {
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).
		Where("validated = ?", false).
		Find(&reviews).Error
	return reviews, err
}
