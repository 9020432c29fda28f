package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleSUV         VehicleType = "SUV"
	VehicleSedan       VehicleType = "Sedan"
	VehicleLuxury      VehicleType = "Luxury"
	VehicleEV          VehicleType = "EV"
	VehicleConvertible VehicleType = "Convertible"
)

type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

type Vehicle struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Type         VehicleType  `json:"type"`
	PricePerDay  float64      `json:"pricePerDay"`
	FuelType     FuelType     `json:"fuelType"`
	Transmission Transmission `json:"transmission"`
	Seats        int          `json:"seats"`
	Images       []string     `json:"images"`
	Features     []string     `json:"features"`
	Rating       float64      `json:"rating"`
	ReviewCount  int          `json:"reviewCount"`
	TotalTrips   int          `json:"totalTrips"`
	IsAvailable  bool         `json:"isAvailable"`
	LicensePlate string       `json:"-"`
	Location     Location     `json:"location"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (v *Vehicle) Validate() error {
	var problems []string

	if strings.TrimSpace(v.Name) == "" {
		problems = append(problems, "Name is required")
	}
	if strings.TrimSpace(v.Brand) == "" {
		problems = append(problems, "Brand is required")
	}
	if strings.TrimSpace(v.Model) == "" {
		problems = append(problems, "Model is required")
	}

	switch v.Type {
	case VehicleSUV, VehicleSedan, VehicleLuxury, VehicleEV, VehicleConvertible:
	default:
		problems = append(problems, "Type must be one of SUV, Sedan, Luxury, EV, Convertible")
	}

	switch v.FuelType {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
	default:
		problems = append(problems, "Fuel type must be one of Petrol, Diesel, Electric, Hybrid")
	}

	switch v.Transmission {
	case TransmissionAutomatic, TransmissionManual:
	default:
		problems = append(problems, "Transmission must be Automatic or Manual")
	}

	if err := validateAmount("Price per day", v.PricePerDay, MaxPricePerDay); err != nil {
		problems = append(problems, err.Error())
	}
	if v.Seats <= 0 {
		problems = append(problems, "Seats must be positive")
	}
	if strings.TrimSpace(v.LicensePlate) == "" {
		problems = append(problems, "License plate is required")
	}

	if len(problems) > 0 {
		return Errorf(ErrValidation, "%s", strings.Join(problems, "; "))
	}

	return nil
}

// VehicleSummary is the subset of a vehicle embedded in booking and payment reads.
type VehicleSummary struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Model       string      `json:"model"`
	Type        VehicleType `json:"type,omitempty"`
	PricePerDay float64     `json:"pricePerDay,omitempty"`
	Images      []string    `json:"images,omitempty"`
}

func (v *Vehicle) Summary() *VehicleSummary {
	return &VehicleSummary{
		ID:          v.ID,
		Name:        v.Name,
		Brand:       v.Brand,
		Model:       v.Model,
		Type:        v.Type,
		PricePerDay: v.PricePerDay,
		Images:      v.Images,
	}
}
