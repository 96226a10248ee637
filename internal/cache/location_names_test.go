package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/reservation-service/internal/models"
	"github.com/Eursukkul/reservation-service/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock LocationRepository ---

type mockLocationRepo struct {
	locations map[string]models.Location
	finds     int
}

func (m *mockLocationRepo) FindByID(ctx context.Context, id string) (*models.Location, error) {
	m.finds++
	loc, ok := m.locations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &loc, nil
}

func (m *mockLocationRepo) Upsert(ctx context.Context, location *models.Location) error {
	m.locations[location.ID] = *location
	return nil
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: map[string]models.Location{
		"L1": {ID: "L1", TenantID: "T1", Name: "Lotus Villa"},
		"L3": {ID: "L3", TenantID: "T1", Name: ""},
	}}
}

func TestDisplayName_ReadThrough(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := newRepo()
	c := NewLocationNames(repo, client, time.Minute, nil)

	name, err := c.DisplayName(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, "Lotus Villa", name)

	cached, err := mr.Get("location:name:L1")
	require.NoError(t, err)
	assert.Equal(t, "Lotus Villa", cached)

	name, err = c.DisplayName(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, "Lotus Villa", name)
	assert.Equal(t, 1, repo.finds)
}

func TestDisplayName_TTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewLocationNames(newRepo(), client, time.Minute, nil)

	_, err := c.DisplayName(context.Background(), "L1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("location:name:L1"))
}

func TestDisplayName_NotFound(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewLocationNames(newRepo(), client, time.Minute, nil)

	_, err := c.DisplayName(context.Background(), "L2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDisplayName_EmptyName(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewLocationNames(newRepo(), client, time.Minute, nil)

	_, err := c.DisplayName(context.Background(), "L3")
	assert.ErrorIs(t, err, ErrNoDisplayName)
	assert.False(t, mr.Exists("location:name:L3"))
}

func TestDisplayName_NilClient(t *testing.T) {
	repo := newRepo()
	c := NewLocationNames(repo, nil, time.Minute, nil)

	for i := 0; i < 2; i++ {
		name, err := c.DisplayName(context.Background(), "L1")
		require.NoError(t, err)
		assert.Equal(t, "Lotus Villa", name)
	}
	assert.Equal(t, 2, repo.finds)
	assert.NoError(t, c.Invalidate(context.Background(), "L1"))
}

func TestDisplayName_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewLocationNames(newRepo(), client, time.Minute, nil)
	mr.Close()

	name, err := c.DisplayName(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, "Lotus Villa", name)
}

func TestInvalidate(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := newRepo()
	c := NewLocationNames(repo, client, time.Minute, nil)

	_, err := c.DisplayName(context.Background(), "L1")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(context.Background(), &models.Location{ID: "L1", TenantID: "T1", Name: "Sea Breeze"}))
	require.NoError(t, c.Invalidate(context.Background(), "L1"))
	assert.False(t, mr.Exists("location:name:L1"))

	name, err := c.DisplayName(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, "Sea Breeze", name)
}

func TestNewRedisClient_EmptyAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient("", "", 0))
}

func TestNewRedisClient_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	require.NotNil(t, client)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())
}
