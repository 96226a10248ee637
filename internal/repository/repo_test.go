package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Eursukkul/reservation-service/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestFindLatestNumber_Found(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectQuery(`SELECT "reservation_number" FROM "reservations" WHERE .*reservation_number LIKE .*ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_number"}).AddRow("LOT-00007"))

	got, err := repo.FindLatestNumber(context.Background(), "T1", "L1", "LOT-")

	require.NoError(t, err)
	assert.Equal(t, "LOT-00007", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLatestNumber_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectQuery(`SELECT "reservation_number" FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_number"}))

	got, err := repo.FindLatestNumber(context.Background(), "T1", "L1", "LOT-")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_WritesBackIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReservationRepository(db)

	now := time.Now()
	batch := []models.Reservation{
		{TenantID: "T1", LocationID: "L1", ReservationNumber: "LOT-00008", RoomID: "101", GuestName: "A", CheckIn: now, CheckOut: now.Add(24 * time.Hour)},
		{TenantID: "T1", LocationID: "L1", ReservationNumber: "LOT-00009", RoomID: "102", GuestName: "A", CheckIn: now, CheckOut: now.Add(24 * time.Hour)},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))
	mock.ExpectCommit()

	err := repo.CreateBatch(context.Background(), batch)

	require.NoError(t, err)
	assert.Equal(t, uint(11), batch[0].ID)
	assert.Equal(t, uint(12), batch[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_UniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reservations"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.CreateBatch(context.Background(), []models.Reservation{{ReservationNumber: "LOT-00008"}})

	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_OtherError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReservationRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reservations"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.CreateBatch(context.Background(), []models.Reservation{{ReservationNumber: "LOT-00008"}})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUniqueViolation)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCreateBatch_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReservationRepository(db)

	assert.NoError(t, repo.CreateBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationFindByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLocationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	loc, err := repo.FindByID(context.Background(), "L2")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, loc)
}

func TestLocationFindByID_Found(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLocationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}).AddRow("L1", "T1", "Lotus Villa"))

	loc, err := repo.FindByID(context.Background(), "L1")

	require.NoError(t, err)
	assert.Equal(t, "Lotus Villa", loc.Name)
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrUniqueViolation)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrUniqueViolation)
	assert.NotErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), ErrUniqueViolation)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "LOT-", escapeLike("LOT-"))
	assert.Equal(t, `A\_B-`, escapeLike("A_B-"))
	assert.Equal(t, `10\%-`, escapeLike("10%-"))
	assert.Equal(t, `A\\B`, escapeLike(`A\B`))
}
