package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/car_rental/internal/core/domain"
	"github.com/srgjo27/car_rental/internal/core/ports"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

var ErrCurrentPasswordIncorrect = domain.Errorf(domain.ErrValidation, "Current password is incorrect")

type AuthService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
	userTTL  time.Duration
	adminTTL time.Duration
	now      func() time.Time
}

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager, userTTL, adminTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		userTTL:  userTTL,
		adminTTL: adminTTL,
		now:      time.Now,
	}
}

// Register creates a regular account. Admin accounts are only created by admins.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.Role != "" && req.Role != string(domain.RoleUser) {
		return nil, validationf("Self registration is limited to the user role")
	}

	user, err := s.createUser(ctx, domain.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) AdminLogin(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() {
		zerolog.Ctx(ctx).Warn().Str("user_id", user.ID.String()).Msg("non-admin attempted admin login")
		return nil, domain.Errorf(domain.ErrForbidden, "Admin privileges required")
	}

	return s.issue(user)
}

func (s *AuthService) ChangePassword(ctx context.Context, caller domain.Identity, req ChangePasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return validationf("New password must be at least 6 characters")
	}

	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return ErrCurrentPasswordIncorrect
		}
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

func (s *AuthService) authenticate(ctx context.Context, req LoginRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, reg domain.Registration, role domain.Role) (*domain.User, error) {
	reg.Email = domain.NormalizeEmail(reg.Email)
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(reg.Name),
		Email:         reg.Email,
		PasswordHash:  hash,
		Phone:         reg.Phone,
		Role:          role,
		ProfileImage:  domain.DefaultProfileImage,
		AccountStatus: domain.AccountActive,
		MemberSince:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Errorf(domain.ErrAlreadyExists, "User already exists")
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("user_id", user.ID.String()).Str("role", string(role)).Msg("user registered")

	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	ttl := s.userTTL
	if user.IsAdmin() {
		ttl = s.adminTTL
	}

	token, err := s.tokens.Issue(user, ttl)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

func validationf(format string, args ...any) error {
	return domain.Errorf(domain.ErrValidation, format, args...)
}
