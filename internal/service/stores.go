package service

import (
	"context"
	"errors"

	"github.com/Eursukkul/reservation-service/internal/repository"
	"github.com/Eursukkul/reservation-service/internal/sequence"
)

type numberStore struct {
	repo repository.ReservationRepository
}

// NewNumberStore exposes the reservation table as the allocator's Store.
func NewNumberStore(repo repository.ReservationRepository) sequence.Store {
	return numberStore{repo: repo}
}

func (s numberStore) LatestNumber(ctx context.Context, tenantID, locationID, prefix string) (string, error) {
	n, err := s.repo.FindLatestNumber(ctx, tenantID, locationID, prefix)
	if errors.Is(err, repository.ErrNotFound) {
		return "", sequence.ErrNoPriorNumber
	}
	return n, err
}
