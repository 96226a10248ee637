package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Eursukkul/reservation-service/internal/models"
	"github.com/Eursukkul/reservation-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errInvalidLocation = errors.New("location message requires id, tenant_id and name")

// NameCache is the part of the display-name cache the consumer needs.
type NameCache interface {
	Invalidate(ctx context.Context, locationID string) error
}

// Acknowledger is implemented by amqp.Delivery.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type LocationConsumer struct {
	repo  repository.LocationRepository
	cache NameCache
	log   *zap.Logger
}

func NewLocationConsumer(repo repository.LocationRepository, cache NameCache, log *zap.Logger) *LocationConsumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocationConsumer{repo: repo, cache: cache, log: log}
}

// Start listens for location messages and upserts them into the local table
// until the delivery channel closes.
func (lc *LocationConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			lc.Handle(ctx, msg.Body, msg)
		}
		lc.log.Info("location delivery channel closed, stopping consumer")
	}()
}

// Handle processes one message body. Malformed messages are dropped; store
// failures are requeued.
func (lc *LocationConsumer) Handle(ctx context.Context, body []byte, ack Acknowledger) {
	var loc models.Location
	if err := json.Unmarshal(body, &loc); err != nil {
		lc.log.Warn("failed to unmarshal location message", zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.ID == "" || loc.TenantID == "" || loc.Name == "" {
		lc.log.Warn("dropping location message", zap.String("location_id", loc.ID), zap.Error(errInvalidLocation))
		_ = ack.Nack(false, false)
		return
	}

	if err := lc.repo.Upsert(ctx, &loc); err != nil {
		lc.log.Error("failed to upsert location", zap.String("location_id", loc.ID), zap.Error(err))
		_ = ack.Nack(false, true)
		return
	}
	if lc.cache != nil {
		if err := lc.cache.Invalidate(ctx, loc.ID); err != nil {
			lc.log.Warn("failed to invalidate location name", zap.String("location_id", loc.ID), zap.Error(err))
		}
	}

	lc.log.Info("synced location", zap.String("location_id", loc.ID), zap.String("name", loc.Name))
	_ = ack.Ack(false)
}
