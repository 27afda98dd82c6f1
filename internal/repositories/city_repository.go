package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type CityRepository interface {
	Create(ctx context.Context, city *db_models.City) error
	Save(ctx context.Context, city *db_models.City) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.City, error)
	FindByName(ctx context.Context, name string) (*db_models.City, error)
	ListAll(ctx context.Context) ([]db_models.City, error)
	ListUnvalidated(ctx context.Context) ([]db_models.City, error)
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{
		db: db,
	}
}

func (r *cityRepository) Create(ctx context.Context, city *db_models.City) error {
	// Linked airports already exist; only the city row and the join rows
	// are written.
	return r.db.WithContext(ctx).Omit("Airports.*").Create(city).Error
}

func (r *cityRepository) Save(ctx context.Context, city *db_models.City) error {
	return r.db.WithContext(ctx).Save(city).Error
}

func (r *cityRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.City, error) {
	var city db_models.City
	err := r.db.WithContext(ctx).
		Preload("Venues.Condition").
		Preload("Airports").
		First(&city, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &city, nil
}

func (r *cityRepository) FindByName(ctx context.Context, name string) (*db_models.City, error) {
	var city db_models.City
	err := r.db.WithContext(ctx).
		Preload("Venues.Condition").
		Preload("Airports").
		First(&city, "name = ?", name).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &city, nil
}

func (r *cityRepository) ListAll(ctx context.Context) ([]db_models.City, error) {
	var cities []db_models.City
	err := r.db.WithContext(ctx).
		Preload("Venues.Condition").
		Preload("Airports").
		Find(&cities).Error
	return cities, err
}

func (r *cityRepository) ListUnvalidated(ctx context.Context) ([]db_models.City, error) {
	var cities []db_models.City
	err := r.db.WithContext(ctx).
		Where("validated = ?", false).
		Find(&cities).Error
	return cities, err
}
