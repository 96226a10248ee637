package repository

import (
	"context"

	"github.com/Eursukkul/reservation-service/internal/models"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	FindLatestNumber(ctx context.Context, tenantID, locationID, prefix string) (string, error)
	CreateBatch(ctx context.Context, reservations []models.Reservation) error
	FindByID(ctx context.Context, tenantID string, id uint) (*models.Reservation, error)
	FindByBookingGroup(ctx context.Context, tenantID, groupID string) ([]models.Reservation, error)
	FindByLocation(ctx context.Context, tenantID, locationID string, limit int) ([]models.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// FindLatestNumber returns the reservation_number of the most recently created
// reservation in the tenant/location scope whose number starts with prefix.
// ErrNotFound means the scope has no such reservation yet. Rows of one batch
// share created_at, so id breaks the tie.
func (r *reservationRepository) FindLatestNumber(ctx context.Context, tenantID, locationID, prefix string) (string, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Select("reservation_number").
		Where("tenant_id = ? AND location_id = ? AND reservation_number LIKE ?", tenantID, locationID, escapeLike(prefix)+"%").
		Order("created_at DESC, id DESC").
		Take(&res).Error
	if err != nil {
		return "", translate(err)
	}
	return res.ReservationNumber, nil
}

// CreateBatch inserts all reservations in one statement inside gorm's default
// transaction, so either every row is stored or none is. IDs are written back
// into the slice.
func (r *reservationRepository) CreateBatch(ctx context.Context, reservations []models.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Create(&reservations).Error)
}

func (r *reservationRepository) FindByID(ctx context.Context, tenantID string, id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&res, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *reservationRepository) FindByBookingGroup(ctx context.Context, tenantID, groupID string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND booking_group_id = ?", tenantID, groupID).
		Order("reservation_number ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, translate(err)
	}
	return reservations, nil
}

func (r *reservationRepository) FindByLocation(ctx context.Context, tenantID, locationID string, limit int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND location_id = ?", tenantID, locationID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reservations).Error; err != nil {
		return nil, translate(err)
	}
	return reservations, nil
}
