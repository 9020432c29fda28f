package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/srgjo27/car_rental/internal/core/domain"
)

// LogPublisher writes notifications to the request logger when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, n domain.Notification) error {
	zerolog.Ctx(ctx).Info().
		Str("user_id", n.UserID.String()).
		Str("type", string(n.Type)).
		Str("title", n.Title).
		Msg("notification")

	return nil
}
