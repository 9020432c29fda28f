package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/ports"
)

type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// UserService covers self-service profile edits and admin account management.
type UserService struct {
	userRepo ports.UserRepository
	auth     *AuthService
}

func NewUserService(userRepo ports.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

func (s *UserService) UpdateProfile(ctx context.Context, caller domain.Identity, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if err := upd.ApplyTo(user); err != nil {
		return nil, err
	}
	user.UpdatedAt = s.auth.now()

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	users, err := s.userRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	return nonNil(users), nil
}

func (s *UserService) ListAdmins(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	role := domain.RoleAdmin
	admins, err := s.userRepo.List(ctx, &role)
	if err != nil {
		return nil, err
	}

	return nonNil(admins), nil
}

func (s *UserService) CreateAdmin(ctx context.Context, caller domain.Identity, req CreateAdminRequest) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	user, err := s.auth.createUser(ctx, domain.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("admin_id", user.ID.String()).
		Str("created_by", caller.UserID.String()).
		Msg("admin account created")

	return user, nil
}

func (s *UserService) DeleteAdmin(ctx context.Context, caller domain.Identity, adminID uuid.UUID) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}

	if adminID == caller.UserID {
		return validationf("You cannot delete your own account")
	}

	if err := s.userRepo.DeleteAdmin(ctx, adminID); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("admin_id", adminID.String()).
		Str("deleted_by", caller.UserID.String()).
		Msg("admin account deleted")

	return nil
}
