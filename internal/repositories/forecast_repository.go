package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wayfarer/internal/models/db_models"
)

type ForecastRepository interface {
	// FindByLocationAndDate returns every forecast row for the location and
	// date, ordered by id. More than one row is a corruption state the
	// forecast service repairs.
	FindByLocationAndDate(ctx context.Context, ref db_models.LocationRef, date time.Time) ([]db_models.Forecast, error)
	ListForAirportFrom(ctx context.Context, airportID uuid.UUID, from time.Time) ([]db_models.Forecast, error)
	CreateBatch(ctx context.Context, forecasts []db_models.Forecast) error
	Save(ctx context.Context, forecast *db_models.Forecast) error
	DeleteByID(ctx context.Context, id int64) error
}

type forecastRepository struct {
	db *gorm.DB
}

func NewForecastRepository(db *gorm.DB) ForecastRepository {
	return &forecastRepository{
		db: db,
	}
}

func (r *forecastRepository) FindByLocationAndDate(ctx context.Context, ref db_models.LocationRef, date time.Time) ([]db_models.Forecast, error) {
	var forecasts []db_models.Forecast
	q := r.db.WithContext(ctx).Order("id asc").Where("date = ?", date)
	if ref.AirportID != nil {
		q = q.Where("airport_id = ?", *ref.AirportID)
	} else {
		q = q.Where("city_id = ?", *ref.CityID)
	}
	err := q.Find(&forecasts).Error
	return forecasts, err
}

func (r *forecastRepository) ListForAirportFrom(ctx context.Context, airportID uuid.UUID, from time.Time) ([]db_models.Forecast, error) {
	var forecasts []db_models.Forecast
	err := r.db.WithContext(ctx).
		Where("airport_id = ? AND date >= ?", airportID, from).
		Order("date asc").
		Find(&forecasts).Error
	return forecasts, err
}

func (r *forecastRepository) CreateBatch(ctx context.Context, forecasts []db_models.Forecast) error {
	if len(forecasts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&forecasts).Error
}

func (r *forecastRepository) Save(ctx context.Context, forecast *db_models.Forecast) error {
	return r.db.WithContext(ctx).Save(forecast).Error
}

func (r *forecastRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&db_models.Forecast{}, "id = ?", id).Error
}
