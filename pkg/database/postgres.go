package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/reservation-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB opens the connection pool, migrates the schema and creates the
// scope-level unique index on reservation numbers.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate is shared with the integration tests.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Location{}, &models.Reservation{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Two submissions that read the same latest number race to insert it;
	// this index is what rejects the loser.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_number_scope
		ON reservations (tenant_id, location_id, reservation_number)
	`).Error; err != nil {
		return fmt.Errorf("create reservation number index: %w", err)
	}
	return nil
}
