package memory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sitewatch/sitewatch-backend/internal/application/auth"
)

// NoopPublisher stands in for the broker when RabbitMQ is unreachable
// in development. Events are logged and dropped; codes and tokens stay
// visible in the dev log so flows remain testable by hand.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishVerifyEmail(ctx context.Context, evt auth.VerifyEmailEvent) error {
	log.Info().
		Str("event", "auth.email.verify.requested").
		Int64("user_id", evt.UserID).
		Str("token", evt.Token).
		Msg("noop publisher: event dropped")
	return nil
}

func (NoopPublisher) PublishResetCode(ctx context.Context, evt auth.ResetCodeEvent) error {
	log.Info().
		Str("event", "auth.password.reset.requested").
		Int64("user_id", evt.UserID).
		Str("code", evt.Code).
		Time("expires_at", evt.ExpiresAt).
		Msg("noop publisher: event dropped")
	return nil
}

func (NoopPublisher) PublishLogin(ctx context.Context, evt auth.LoginEvent) error {
	log.Info().
		Str("event", "auth.user.logged_in").
		Int64("user_id", evt.UserID).
		Msg("noop publisher: event dropped")
	return nil
}
