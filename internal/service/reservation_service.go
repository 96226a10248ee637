package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/reservation-service/internal/models"
	"github.com/Eursukkul/reservation-service/internal/repository"
	"github.com/Eursukkul/reservation-service/internal/sequence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RoutingReservationCreated = "reservation.created"

var (
	ErrNoRooms             = errors.New("at least one room is required")
	ErrMissingScope        = errors.New("tenant_id and location_id are required")
	ErrCreateFailed        = errors.New("failed to create reservations")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Allocator hands out blocks of reservation numbers.
type Allocator interface {
	AllocateBlock(ctx context.Context, tenantID, locationID string, count int) (sequence.Block, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// CreateResult describes a successful submission.
type CreateResult struct {
	Reservations   []models.Reservation
	IDs            []uint
	Numbers        []string
	BookingGroupID *string
	Attempts       int
}

type ReservationCreatedEvent struct {
	TenantID           string    `json:"tenant_id"`
	LocationID         string    `json:"location_id"`
	BookingGroupID     *string   `json:"booking_group_id"`
	ReservationIDs     []uint    `json:"reservation_ids"`
	ReservationNumbers []string  `json:"reservation_numbers"`
	CreatedAt          time.Time `json:"created_at"`
}

type ReservationService interface {
	CreateReservations(ctx context.Context, tenantID, locationID string, records []models.Reservation) (*CreateResult, error)
	PreviewNumbers(ctx context.Context, tenantID, locationID string, count int) (sequence.Block, error)
	GetReservation(ctx context.Context, tenantID string, id uint) (*models.Reservation, error)
	ListBookingGroup(ctx context.Context, tenantID, groupID string) ([]models.Reservation, error)
	ListByLocation(ctx context.Context, tenantID, locationID string, limit int) ([]models.Reservation, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	allocator Allocator
	publisher Publisher
	log       *zap.Logger
	now       func() time.Time
}

// NewReservationService wires the service. publisher may be nil, in which case
// no reservation.created messages are sent.
func NewReservationService(repo repository.ReservationRepository, allocator Allocator, publisher Publisher, log *zap.Logger) ReservationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &reservationService{
		repo:      repo,
		allocator: allocator,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// CreateReservations numbers and inserts one submission. All records share a
// booking group when there is more than one. A collision on the first insert
// is retried once with the following block; anything else is returned wrapped
// in ErrCreateFailed and no rows are left behind.
func (s *reservationService) CreateReservations(ctx context.Context, tenantID, locationID string, records []models.Reservation) (*CreateResult, error) {
	if len(records) == 0 {
		return nil, ErrNoRooms
	}
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(locationID) == "" {
		return nil, ErrMissingScope
	}

	var groupID *string
	if len(records) > 1 {
		id := uuid.NewString()
		groupID = &id
	}
	for i := range records {
		records[i].TenantID = tenantID
		records[i].LocationID = locationID
		records[i].BookingGroupID = groupID
		if records[i].Status == "" {
			records[i].Status = models.StatusConfirmed
		}
	}

	log := s.log.With(
		zap.String("tenant_id", tenantID),
		zap.String("location_id", locationID),
		zap.Int("count", len(records)),
	)

	block, err := s.allocator.AllocateBlock(ctx, tenantID, locationID, len(records))
	fallback := err != nil
	if fallback {
		log.Warn("reservation number allocation failed, using fallback numbers", zap.Error(err))
		assignNumbers(records, sequence.FallbackNumbers(s.now(), len(records)))
	} else {
		assignNumbers(records, block.Numbers())
	}

	attempts := 1
	err = s.repo.CreateBatch(ctx, records)
	if errors.Is(err, repository.ErrUniqueViolation) {
		log.Info("reservation number collision, retrying with next block",
			zap.Strings("numbers", numbersOf(records)), zap.Error(err))
		if fallback {
			assignNumbers(records, sequence.FallbackNumbers(s.now(), len(records)))
		} else {
			block = block.Next()
			assignNumbers(records, block.Numbers())
		}
		attempts++
		err = s.repo.CreateBatch(ctx, records)
	}
	if err != nil {
		log.Error("create reservations failed", zap.Int("attempts", attempts), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	result := &CreateResult{
		Reservations:   records,
		IDs:            make([]uint, len(records)),
		Numbers:        numbersOf(records),
		BookingGroupID: groupID,
		Attempts:       attempts,
	}
	for i, r := range records {
		result.IDs[i] = r.ID
	}
	log.Info("reservations created", zap.Strings("numbers", result.Numbers), zap.Int("attempts", attempts))

	s.publishCreated(ctx, tenantID, locationID, result)
	return result, nil
}

func (s *reservationService) publishCreated(ctx context.Context, tenantID, locationID string, result *CreateResult) {
	if s.publisher == nil {
		return
	}
	event := ReservationCreatedEvent{
		TenantID:           tenantID,
		LocationID:         locationID,
		BookingGroupID:     result.BookingGroupID,
		ReservationIDs:     result.IDs,
		ReservationNumbers: result.Numbers,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, RoutingReservationCreated, event); err != nil {
		s.log.Warn("publish reservation.created failed", zap.Error(err))
	}
}

func (s *reservationService) PreviewNumbers(ctx context.Context, tenantID, locationID string, count int) (sequence.Block, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(locationID) == "" {
		return sequence.Block{}, ErrMissingScope
	}
	return s.allocator.AllocateBlock(ctx, tenantID, locationID, count)
}

func (s *reservationService) GetReservation(ctx context.Context, tenantID string, id uint) (*models.Reservation, error) {
	res, err := s.repo.FindByID(ctx, tenantID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

func (s *reservationService) ListBookingGroup(ctx context.Context, tenantID, groupID string) ([]models.Reservation, error) {
	return s.repo.FindByBookingGroup(ctx, tenantID, groupID)
}

func (s *reservationService) ListByLocation(ctx context.Context, tenantID, locationID string, limit int) ([]models.Reservation, error) {
	return s.repo.FindByLocation(ctx, tenantID, locationID, limit)
}

func assignNumbers(records []models.Reservation, numbers []string) {
	for i := range records {
		records[i].ReservationNumber = numbers[i]
	}
}

func numbersOf(records []models.Reservation) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ReservationNumber
	}
	return out
}
