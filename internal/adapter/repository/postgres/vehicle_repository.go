package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, name, brand, model, type, price_per_day, fuel_type, transmission, seats, images, features,
	rating, review_count, total_trips, is_available, license_plate, location_lat, location_lng, location_addr,
	created_at, updated_at`

func scanVehicle(row scanner) (*domain.Vehicle, error) {
	var v domain.Vehicle

	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Brand,
		&v.Model,
		&v.Type,
		&v.PricePerDay,
		&v.FuelType,
		&v.Transmission,
		&v.Seats,
		pq.Array(&v.Images),
		pq.Array(&v.Features),
		&v.Rating,
		&v.ReviewCount,
		&v.TotalTrips,
		&v.IsAvailable,
		&v.LicensePlate,
		&v.Location.Lat,
		&v.Location.Lng,
		&v.Location.Address,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `
	INSERT INTO cars (` + vehicleColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.Brand, v.Model, v.Type, v.PricePerDay, v.FuelType, v.Transmission, v.Seats,
		pq.Array(nonNilStrings(v.Images)), pq.Array(nonNilStrings(v.Features)),
		v.Rating, v.ReviewCount, v.TotalTrips, v.IsAvailable, v.LicensePlate,
		v.Location.Lat, v.Location.Lng, v.Location.Address, v.CreatedAt, v.UpdatedAt,
	)

	return mapError(err, "Car")
}

func (r *VehicleRepository) GetByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM cars WHERE id = $1`, vehicleID)

	v, err := scanVehicle(row)
	return v, mapError(err, "Car")
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM cars ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}

		vehicles = append(vehicles, *v)
	}

	return vehicles, rows.Err()
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `
	UPDATE cars
	SET name = $1, brand = $2, model = $3, type = $4, price_per_day = $5, fuel_type = $6, transmission = $7,
		seats = $8, images = $9, features = $10, is_available = $11, license_plate = $12,
		location_lat = $13, location_lng = $14, location_addr = $15, updated_at = $16
	WHERE id = $17
	`

	result, err := r.db.ExecContext(ctx, query,
		v.Name, v.Brand, v.Model, v.Type, v.PricePerDay, v.FuelType, v.Transmission,
		v.Seats, pq.Array(nonNilStrings(v.Images)), pq.Array(nonNilStrings(v.Features)), v.IsAvailable, v.LicensePlate,
		v.Location.Lat, v.Location.Lng, v.Location.Address, v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		return mapError(err, "Car")
	}

	return expectOneRow(result, "Car")
}

// Delete refuses cars that still have bookings; the foreign key reports it.
func (r *VehicleRepository) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, vehicleID)
	if err != nil {
		return mapError(err, "Car")
	}

	return expectOneRow(result, "Car")
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
