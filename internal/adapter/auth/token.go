package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
	}
}

func (t *TokenManager) Issue(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(t.secret)
}

func (t *TokenManager) Parse(raw string) (domain.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return domain.Identity{}, domain.Errorf(domain.ErrInvalidToken, "%v", err)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return domain.Identity{}, domain.Errorf(domain.ErrInvalidToken, "Bad subject")
	}

	role := domain.Role(c.Role)
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return domain.Identity{}, domain.Errorf(domain.ErrInvalidToken, "Unknown role %q", c.Role)
	}

	return domain.Identity{UserID: userID, Role: role}, nil
}
