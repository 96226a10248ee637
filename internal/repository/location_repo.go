package repository

import (
	"context"

	"github.com/Eursukkul/reservation-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Location, error)
	Upsert(ctx context.Context, location *models.Location) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) FindByID(ctx context.Context, id string) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error; err != nil {
		return nil, translate(err)
	}
	return &loc, nil
}

// Upsert inserts the location or updates it when the same ID arrives again
// from the property service.
func (r *locationRepository) Upsert(ctx context.Context, location *models.Location) error {
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tenant_id", "name", "updated_at"}),
	}).Create(location).Error)
}
