package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type AccountStatus string

const (
	AccountActive              AccountStatus = "active"
	AccountSuspended           AccountStatus = "suspended"
	AccountPendingVerification AccountStatus = "pending_verification"
)

const DefaultProfileImage = "https://via.placeholder.com/150"

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

type Preferences struct {
	FavoriteCarTypes    []string `json:"favoriteCarTypes,omitempty"`
	PreferredLocations  []string `json:"preferredLocations,omitempty"`
	InsurancePreference string   `json:"insurancePreference,omitempty"`
}

type License struct {
	Number string     `json:"licenseNumber,omitempty"`
	Expiry *time.Time `json:"licenseExpiry,omitempty"`
	State  string     `json:"licenseState,omitempty"`
}

type User struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	Phone         string        `json:"phone,omitempty"`
	Role          Role          `json:"role"`
	ProfileImage  string        `json:"profileImage"`
	IsVerified    bool          `json:"isVerified"`
	PushToken     string        `json:"pushToken,omitempty"`
	DateOfBirth   *time.Time    `json:"dateOfBirth,omitempty"`
	Gender        string        `json:"gender,omitempty"`
	License       License       `json:"license"`
	Address       Address       `json:"address"`
	Preferences   Preferences   `json:"preferences"`
	AccountStatus AccountStatus `json:"accountStatus"`
	UserStats
	MemberSince time.Time `json:"memberSince"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return Errorf(ErrValidation, "Name is required")
	}

	if _, err := mail.ParseAddress(r.Email); err != nil {
		return Errorf(ErrValidation, "A valid email is required")
	}

	if len(r.Password) < 6 {
		return Errorf(ErrValidation, "Password must be at least 6 characters")
	}

	return nil
}

// ProfileUpdate carries the self-service editable fields. Nil means unchanged.
type ProfileUpdate struct {
	Name         *string      `json:"name"`
	Phone        *string      `json:"phone"`
	ProfileImage *string      `json:"profileImage"`
	PushToken    *string      `json:"pushToken"`
	DateOfBirth  *time.Time   `json:"dateOfBirth"`
	Gender       *string      `json:"gender"`
	License      *License     `json:"license"`
	Address      *Address     `json:"address"`
	Preferences  *Preferences `json:"preferences"`
}

func (p ProfileUpdate) ApplyTo(u *User) error {
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return Errorf(ErrValidation, "Name cannot be empty")
		}
		u.Name = strings.TrimSpace(*p.Name)
	}

	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	if p.PushToken != nil {
		u.PushToken = *p.PushToken
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = p.DateOfBirth
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.License != nil {
		u.License = *p.License
	}
	if p.Address != nil {
		u.Address = *p.Address
	}

	if p.Preferences != nil {
		switch p.Preferences.InsurancePreference {
		case "", "basic", "standard", "premium":
		default:
			return Errorf(ErrValidation, "Insurance preference must be basic, standard or premium")
		}
		u.Preferences = *p.Preferences
	}

	return nil
}

// Identity is the authenticated caller decoded from a bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
