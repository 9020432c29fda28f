package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vehicleColumnNames = []string{
	"id", "name", "brand", "model", "type", "price_per_day", "fuel_type", "transmission", "seats", "images", "features",
	"rating", "review_count", "total_trips", "is_available", "license_plate", "location_lat", "location_lng", "location_addr",
	"created_at", "updated_at",
}

func TestVehicleRepository_GetByID(t *testing.T) {
	db, mock := newDB(t)
	repo := NewVehicleRepository(db)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(vehicleColumnNames).AddRow(
			id.String(), "Model 3", "Tesla", "Model 3", "EV", 120.0, "Electric", "Automatic", int64(5),
			"{/img/a.jpg}", `{Autopilot,"Heated seats"}`,
			4.9, int64(31), int64(80), true, "EV-1234", 30.27, -97.74, "Austin",
			now, now,
		))

	v, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleEV, v.Type)
	assert.Equal(t, []string{"/img/a.jpg"}, v.Images)
	assert.Equal(t, []string{"Autopilot", "Heated seats"}, v.Features)
	assert.Equal(t, "EV-1234", v.LicensePlate)
	assert.Equal(t, "Austin", v.Location.Address)
}

func TestVehicleRepository_GetByIDMissing(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE id = $1")).WillReturnRows(sqlmock.NewRows(vehicleColumnNames))

	_, err := NewVehicleRepository(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepository_CreateDuplicatePlate(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cars")).WillReturnError(uniqueErr())

	err := NewVehicleRepository(db).Create(context.Background(), &domain.Vehicle{ID: uuid.New(), LicensePlate: "EV-1234"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestVehicleRepository_Delete(t *testing.T) {
	t.Run("car with bookings is refused", func(t *testing.T) {
		db, mock := newDB(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cars WHERE id = $1")).
			WillReturnError(&pq.Error{Code: foreignKeyViolation})

		err := NewVehicleRepository(db).Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown car", func(t *testing.T) {
		db, mock := newDB(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cars WHERE id = $1")).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewVehicleRepository(db).Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVehicleRepository_Update(t *testing.T) {
	db, mock := newDB(t)
	v := &domain.Vehicle{ID: uuid.New(), Name: "Model Y", IsAvailable: false}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE cars")).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewVehicleRepository(db).Update(context.Background(), v))
	assert.NoError(t, mock.ExpectationsWereMet())
}
