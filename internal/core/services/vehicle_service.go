package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/ports"
)

// VehicleRequest is the admin write model. Nil fields are left untouched.
type VehicleRequest struct {
	Name         *string              `json:"name"`
	Brand        *string              `json:"brand"`
	Model        *string              `json:"model"`
	Type         *domain.VehicleType  `json:"type"`
	PricePerDay  *float64             `json:"pricePerDay"`
	FuelType     *domain.FuelType     `json:"fuelType"`
	Transmission *domain.Transmission `json:"transmission"`
	Seats        *int                 `json:"seats"`
	Images       []string             `json:"images"`
	Features     []string             `json:"features"`
	IsAvailable  *bool                `json:"isAvailable"`
	LicensePlate *string              `json:"licensePlate"`
	Location     *domain.Location     `json:"location"`
}

func (r VehicleRequest) applyTo(v *domain.Vehicle) {
	if r.Name != nil {
		v.Name = *r.Name
	}
	if r.Brand != nil {
		v.Brand = *r.Brand
	}
	if r.Model != nil {
		v.Model = *r.Model
	}
	if r.Type != nil {
		v.Type = *r.Type
	}
	if r.PricePerDay != nil {
		v.PricePerDay = *r.PricePerDay
	}
	if r.FuelType != nil {
		v.FuelType = *r.FuelType
	}
	if r.Transmission != nil {
		v.Transmission = *r.Transmission
	}
	if r.Seats != nil {
		v.Seats = *r.Seats
	}
	if r.Images != nil {
		v.Images = r.Images
	}
	if r.Features != nil {
		v.Features = r.Features
	}
	if r.IsAvailable != nil {
		v.IsAvailable = *r.IsAvailable
	}
	if r.LicensePlate != nil {
		v.LicensePlate = *r.LicensePlate
	}
	if r.Location != nil {
		v.Location = *r.Location
	}
}

type VehicleService struct {
	vehicleRepo ports.VehicleRepository
	now         func() time.Time
}

func NewVehicleService(vehicleRepo ports.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, now: time.Now}
}

func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return nonNil(vehicles), nil
}

func (s *VehicleService) Get(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, caller domain.Identity, req VehicleRequest) (*domain.Vehicle, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	now := s.now()
	v := &domain.Vehicle{
		ID:          uuid.New(),
		Images:      []string{},
		Features:    []string{},
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	req.applyTo(v)

	if err := v.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// Update merges the supplied fields into the stored vehicle.
func (s *VehicleService) Update(ctx context.Context, caller domain.Identity, id uuid.UUID, req VehicleRequest) (*domain.Vehicle, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.applyTo(v)
	v.UpdatedAt = s.now()

	if err := v.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	return s.vehicleRepo.Delete(ctx, id)
}
