package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type AirportRepository interface {
	Create(ctx context.Context, airport *db_models.Airport) error
	Save(ctx context.Context, airport *db_models.Airport) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Airport, error)
	FindByName(ctx context.Context, name string) (*db_models.Airport, error)
	ListAll(ctx context.Context) ([]db_models.Airport, error)
	ListUnvalidated(ctx context.Context) ([]db_models.Airport, error)
}

type airportRepository struct {
	db *gorm.DB
}

func NewAirportRepository(db *gorm.DB) AirportRepository {
	return &airportRepository{
		db: db,
	}
}

func (r *airportRepository) Create(ctx context.Context, airport *db_models.Airport) error {
	return r.db.WithContext(ctx).Create(airport).Error
}

func (r *airportRepository) Save(ctx context.Context, airport *db_models.Airport) error {
	return r.db.WithContext(ctx).Save(airport).Error
}

func (r *airportRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Airport, error) {
	var airport db_models.Airport
	err := r.db.WithContext(ctx).
		Preload("Cities.Venues.Condition").
		Preload("Cities.Airports").
		First(&airport, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

func (r *airportRepository) FindByName(ctx context.Context, name string) (*db_models.Airport, error) {
	var airport db_models.Airport
	err := r.db.WithContext(ctx).
		Preload("Cities.Venues.Condition").
		Preload("Cities.Airports").
		First(&airport, "name = ?", name).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

func (r *airportRepository) ListAll(ctx context.Context) ([]db_models.Airport, error) {
	var airports []db_models.Airport
	err := r.db.WithContext(ctx).
		Preload("Cities.Venues.Condition").
		Preload("Cities.Airports").
		Find(&airports).Error
	return airports, err
}

func (r *airportRepository) ListUnvalidated(ctx context.Context) ([]db_models.Airport, error) {
	var airports []db_models.Airport
	err := r.db.WithContext(ctx).
		Where("validated = ?", false).
		Find(&airports).Error
	return airports, err
}
