package sequence

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FallbackScopeCode is used when a location has no usable display name.
const FallbackScopeCode = "LOC"

var (
	ErrInvalidCount = errors.New("count must be at least 1")
	// ErrNoPriorNumber is returned by a Store when the scope has no reservation yet.
	ErrNoPriorNumber = errors.New("no prior reservation number")
)

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// Store reads the most recent reservation number in a scope.
type Store interface {
	LatestNumber(ctx context.Context, tenantID, locationID, prefix string) (string, error)
}

// Directory resolves a location's display name.
type Directory interface {
	DisplayName(ctx context.Context, locationID string) (string, error)
}

type Allocator struct {
	store     Store
	directory Directory
	log       *zap.Logger
}

func NewAllocator(store Store, directory Directory, log *zap.Logger) *Allocator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Allocator{store: store, directory: directory, log: log}
}

// ResolveScopeCode returns the upper-cased first three characters of the
// location's display name, or FallbackScopeCode when the name cannot be used.
func (a *Allocator) ResolveScopeCode(ctx context.Context, locationID string) string {
	name, err := a.directory.DisplayName(ctx, locationID)
	if err != nil {
		a.log.Warn("location lookup failed, using fallback scope code",
			zap.String("location_id", locationID), zap.Error(err))
		return FallbackScopeCode
	}
	return ScopeCode(name)
}

// ScopeCode derives the scope code from a display name.
func ScopeCode(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return FallbackScopeCode
	}
	r := []rune(name)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// NextSequenceNumber returns one past the trailing number of the latest
// reservation in the scope, or 1 when there is none.
//
// A stored number without trailing digits also yields 1. That restarts the
// series and may collide with older numbers; the unique index and the insert
// retry are what keep it from producing duplicates.
func (a *Allocator) NextSequenceNumber(ctx context.Context, tenantID, locationID, scopeCode string) (int, error) {
	last, err := a.store.LatestNumber(ctx, tenantID, locationID, scopeCode+"-")
	if errors.Is(err, ErrNoPriorNumber) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("latest reservation number: %w", err)
	}

	m := trailingDigits.FindStringSubmatch(last)
	if m == nil {
		a.log.Warn("stored reservation number has no trailing digits, restarting at 1",
			zap.String("tenant_id", tenantID),
			zap.String("location_id", locationID),
			zap.String("reservation_number", last))
		return 1, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// only reachable on overflow
		a.log.Warn("stored reservation number out of range, restarting at 1",
			zap.String("reservation_number", last), zap.Error(err))
		return 1, nil
	}
	return n + 1, nil
}

// AllocateBlock reserves count consecutive numbers for one submission. The
// numbers are not held anywhere; they become real only when inserted.
func (a *Allocator) AllocateBlock(ctx context.Context, tenantID, locationID string, count int) (Block, error) {
	if count < 1 {
		return Block{}, ErrInvalidCount
	}
	scope := a.ResolveScopeCode(ctx, locationID)
	start, err := a.NextSequenceNumber(ctx, tenantID, locationID, scope)
	if err != nil {
		return Block{}, err
	}
	return Block{ScopeCode: scope, Start: start, Count: count}, nil
}
