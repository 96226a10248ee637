package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type RoomRequest struct {
	RoomID       string          `json:"room_id" validate:"required"`
	GuestName    string          `json:"guest_name" validate:"required"`
	GuestEmail   string          `json:"guest_email" validate:"omitempty,email"`
	CheckIn      time.Time       `json:"check_in" validate:"required"`
	CheckOut     time.Time       `json:"check_out" validate:"required,gtfield=CheckIn"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	GuestDetails json.RawMessage `json:"guest_details,omitempty"`
}

// CreateReservationsRequest is one submission; every room becomes a reservation.
type CreateReservationsRequest struct {
	Rooms []RoomRequest `json:"rooms" validate:"required,min=1,dive"`
}
