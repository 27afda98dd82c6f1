package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *db_models.Venue) error
	Save(ctx context.Context, venue *db_models.Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Venue, error)
	FindByName(ctx context.Context, name string) (*db_models.Venue, error)
	ListByCity(ctx context.Context, cityID uuid.UUID) ([]db_models.Venue, error)
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{
		db: db,
	}
}

func (r *venueRepository) Create(ctx context.Context, venue *db_models.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *venueRepository) Save(ctx context.Context, venue *db_models.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Venue, error) {
	var venue db_models.Venue
	err := r.db.WithContext(ctx).
		Preload("Condition").
		Preload("Reviews").
		First(&venue, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &venue, nil
}

func (r *venueRepository) FindByName(ctx context.Context, name string) (*db_models.Venue, error) {
	var venue db_models.Venue
	err := r.db.WithContext(ctx).
		Preload("Condition").
		Preload("Reviews").
		First(&venue, "name = ?", name).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &venue, nil
}

func (r *venueRepository) ListByCity(ctx context.Context, cityID uuid.UUID) ([]db_models.Venue, error) {
	var venues []db_models.Venue
	err := r.db.WithContext(ctx).
		Preload("Condition").
		Where("city_id = ?", cityID).
		Find(&venues).Error
	return venues, err
}
