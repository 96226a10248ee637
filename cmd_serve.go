package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/reservation-service/config"
	"github.com/Eursukkul/reservation-service/internal/cache"
	"github.com/Eursukkul/reservation-service/internal/consumer"
	"github.com/Eursukkul/reservation-service/internal/handler"
	"github.com/Eursukkul/reservation-service/internal/middleware"
	"github.com/Eursukkul/reservation-service/internal/repository"
	"github.com/Eursukkul/reservation-service/internal/sequence"
	"github.com/Eursukkul/reservation-service/internal/service"
	"github.com/Eursukkul/reservation-service/pkg/database"
	"github.com/Eursukkul/reservation-service/pkg/logger"
	"github.com/Eursukkul/reservation-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the location sync consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		return err
	}

	// Repositories
	reservationRepo := repository.NewReservationRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient == nil {
		log.Warn("redis unavailable, location names are read from the database", zap.String("addr", cfg.RedisAddr))
	} else {
		defer redisClient.Close()
	}
	names := cache.NewLocationNames(locationRepo, redisClient, cfg.LocationCacheTTL, log)

	// RabbitMQ: location sync in, reservation.created out. Both are optional.
	var publisher service.Publisher
	if pub, err := rabbitmq.NewPublisher(cfg.RabbitURL); err != nil {
		log.Warn("rabbitmq publisher unavailable", zap.Error(err))
	} else {
		defer pub.Close()
		publisher = pub
	}

	if mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL); err != nil {
		log.Warn("rabbitmq consumer unavailable", zap.Error(err))
	} else {
		defer mqConsumer.Close()
		msgs, err := mqConsumer.Consume()
		if err != nil {
			return err
		}
		consumer.NewLocationConsumer(locationRepo, names, log).Start(ctx, msgs)
	}

	// Service
	allocator := sequence.NewAllocator(service.NewNumberStore(reservationRepo), names, log)
	reservationSvc := service.NewReservationService(reservationRepo, allocator, publisher, log)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})

	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		log.Info("reservation service starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
