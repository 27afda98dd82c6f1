package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *db_models.Itinerary) error
	Save(ctx context.Context, itinerary *db_models.Itinerary) error
	Delete(ctx context.Context, itinerary *db_models.Itinerary) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error)
	ListFromDate(ctx context.Context, tripID uuid.UUID, from time.Time) ([]db_models.Itinerary, error)
	ListByDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]db_models.Itinerary, error)
	ListBefore(ctx context.Context, tripID uuid.UUID, before time.Time) ([]db_models.Itinerary, error)
	ListPending(ctx context.Context, tripID uuid.UUID) ([]db_models.Itinerary, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]db_models.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{
		db: db,
	}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *db_models.Itinerary) error {
	// Airport, city and venue rows already exist; only the itinerary row and
	// the venue join rows are written.
	return r.db.WithContext(ctx).
		Omit("Airport", "City", "LeftFromAirport", "Venues.*").
		Create(itinerary).Error
}

func (r *itineraryRepository) Save(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).
		Omit("Airport", "City", "LeftFromAirport", "Venues").
		Save(itinerary).Error
}

func (r *itineraryRepository) Delete(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Delete(itinerary).Error
}

func (r *itineraryRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Airport").
		Preload("City").
		Preload("LeftFromAirport").
		Preload("Venues").
		First(&itinerary, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

func (r *itineraryRepository) ListFromDate(ctx context.Context, tripID uuid.UUID, from time.Time) ([]db_models.Itinerary, error) {
	return r.list(ctx, "trip_id = ? AND date >= ?", tripID, from)
}

func (r *itineraryRepository) ListByDate(ctx context.Context, tripID uuid.UUID, date time.Time) ([]db_models.Itinerary, error) {
	return r.list(ctx, "trip_id = ? AND date = ?", tripID, date)
}

func (r *itineraryRepository) ListBefore(ctx context.Context, tripID uuid.UUID, before time.Time) ([]db_models.Itinerary, error) {
	return r.list(ctx, "trip_id = ? AND date < ?", tripID, before)
}

func (r *itineraryRepository) ListPending(ctx context.Context, tripID uuid.UUID) ([]db_models.Itinerary, error) {
	return r.list(ctx, "trip_id = ? AND track_kind IN ?", tripID,
		[]string{db_models.TrackClosest, db_models.TrackEntertainment})
}

func (r *itineraryRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]db_models.Itinerary, error) {
	return r.list(ctx, "trip_id = ?", tripID)
}

func (r *itineraryRepository) list(ctx context.Context, query string, args ...interface{}) ([]db_models.Itinerary, error) {
	var itineraries []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Airport").
		Preload("City").
		Preload("LeftFromAirport").
		Preload("Venues").
		Where(query, args...).
		Order("date asc").
		Find(&itineraries).Error
	return itineraries, err
}
