package ports

import (
	"context"
	"time"

	"github.com/srgjo27/car_rental/internal/core/domain"
)

type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type NotificationPublisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type TokenManager interface {
	Issue(user *domain.User, ttl time.Duration) (string, error)
	Parse(token string) (domain.Identity, error)
}

type InvoiceRenderer interface {
	Render(booking *domain.Booking, payments []domain.Payment) ([]byte, error)
}
