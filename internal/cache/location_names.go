package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Eursukkul/reservation-service/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "location:name:"

var ErrNoDisplayName = errors.New("location has no display name")

// LocationNames is a read-through cache of location display names in front of
// the location table. A nil client disables caching; Redis errors fall back to
// the repository.
type LocationNames struct {
	repo   repository.LocationRepository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewLocationNames(repo repository.LocationRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) *LocationNames {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocationNames{repo: repo, client: client, ttl: ttl, log: log}
}

func (c *LocationNames) DisplayName(ctx context.Context, locationID string) (string, error) {
	if c.client != nil {
		name, err := c.client.Get(ctx, keyPrefix+locationID).Result()
		switch {
		case err == nil:
			return name, nil
		case !errors.Is(err, redis.Nil):
			c.log.Warn("location name cache read failed", zap.String("location_id", locationID), zap.Error(err))
		}
	}

	loc, err := c.repo.FindByID(ctx, locationID)
	if err != nil {
		return "", err
	}
	if loc.Name == "" {
		return "", ErrNoDisplayName
	}

	if c.client != nil {
		if err := c.client.Set(ctx, keyPrefix+locationID, loc.Name, c.ttl).Err(); err != nil {
			c.log.Warn("location name cache write failed", zap.String("location_id", locationID), zap.Error(err))
		}
	}
	return loc.Name, nil
}

// Invalidate drops the cached name so the next lookup reads the table.
func (c *LocationNames) Invalidate(ctx context.Context, locationID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keyPrefix+locationID).Err()
}
