package dto

import (
	"time"

	"github.com/Eursukkul/reservation-service/internal/models"
	"github.com/Eursukkul/reservation-service/internal/service"
	"github.com/Eursukkul/reservation-service/internal/sequence"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ReservationResponse struct {
	ID                uint                     `json:"id"`
	TenantID          string                   `json:"tenant_id"`
	LocationID        string                   `json:"location_id"`
	ReservationNumber string                   `json:"reservation_number"`
	BookingGroupID    *string                  `json:"booking_group_id"`
	RoomID            string                   `json:"room_id"`
	GuestName         string                   `json:"guest_name"`
	GuestEmail        string                   `json:"guest_email,omitempty"`
	CheckIn           time.Time                `json:"check_in"`
	CheckOut          time.Time                `json:"check_out"`
	TotalAmount       decimal.Decimal          `json:"total_amount"`
	Status            models.ReservationStatus `json:"status"`
	GuestDetails      datatypes.JSON           `json:"guest_details,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
}

type CreateReservationsResponse struct {
	Success            bool     `json:"success"`
	IDs                []uint   `json:"ids"`
	ReservationNumbers []string `json:"reservation_numbers"`
	BookingGroupID     *string  `json:"booking_group_id"`
}

type NextNumbersResponse struct {
	ScopeCode     string   `json:"scope_code"`
	SequenceStart int      `json:"sequence_start"`
	Numbers       []string `json:"numbers"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                r.ID,
		TenantID:          r.TenantID,
		LocationID:        r.LocationID,
		ReservationNumber: r.ReservationNumber,
		BookingGroupID:    r.BookingGroupID,
		RoomID:            r.RoomID,
		GuestName:         r.GuestName,
		GuestEmail:        r.GuestEmail,
		CheckIn:           r.CheckIn,
		CheckOut:          r.CheckOut,
		TotalAmount:       r.TotalAmount,
		Status:            r.Status,
		GuestDetails:      r.GuestDetails,
		CreatedAt:         r.CreatedAt,
	}
}

func ToReservationResponses(rs []models.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(rs))
	for i := range rs {
		resp[i] = ToReservationResponse(&rs[i])
	}
	return resp
}

func ToCreateReservationsResponse(res *service.CreateResult) CreateReservationsResponse {
	return CreateReservationsResponse{
		Success:            true,
		IDs:                res.IDs,
		ReservationNumbers: res.Numbers,
		BookingGroupID:     res.BookingGroupID,
	}
}

func ToNextNumbersResponse(b sequence.Block) NextNumbersResponse {
	return NextNumbersResponse{
		ScopeCode:     b.ScopeCode,
		SequenceStart: b.Start,
		Numbers:       b.Numbers(),
	}
}
