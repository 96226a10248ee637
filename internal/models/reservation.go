package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCheckedIn ReservationStatus = "checked_in"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is one booked room. ReservationNumber is unique per
// (tenant_id, location_id) through idx_reservation_number_scope.
type Reservation struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	TenantID          string            `gorm:"type:varchar(64);not null;index:idx_reservation_scope_created,priority:1" json:"tenant_id"`
	LocationID        string            `gorm:"type:varchar(64);not null;index:idx_reservation_scope_created,priority:2" json:"location_id"`
	ReservationNumber string            `gorm:"type:varchar(64);not null" json:"reservation_number"`
	BookingGroupID    *string           `gorm:"type:varchar(36);index" json:"booking_group_id"`
	RoomID            string            `gorm:"type:varchar(64);not null" json:"room_id"`
	GuestName         string            `gorm:"not null" json:"guest_name"`
	GuestEmail        string            `json:"guest_email,omitempty"`
	CheckIn           time.Time         `gorm:"not null" json:"check_in"`
	CheckOut          time.Time         `gorm:"not null" json:"check_out"`
	TotalAmount       decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	Status            ReservationStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	GuestDetails      datatypes.JSON    `json:"guest_details,omitempty"`
	CreatedAt         time.Time         `gorm:"index:idx_reservation_scope_created,priority:3,sort:desc" json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
