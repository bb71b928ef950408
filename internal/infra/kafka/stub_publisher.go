package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/infra/logger"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, accountID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("account_id", accountID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishAccountRegistered logs account.registered events.
func (p *StubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	payload := map[string]any{
		"account_id":    event.AccountID,
		"username":      event.Username,
		"email":         logger.MaskEmail(event.Email),
		"role":          event.Role,
		"registered_at": event.RegisteredAt,
	}
	p.logEvent("account.registered", event.AccountID, event.RegisteredAt, payload)
	return nil
}

// PublishAccountLocked logs account.locked events.
func (p *StubPublisher) PublishAccountLocked(_ context.Context, event domain.AccountLockedEvent) error {
	payload := map[string]any{
		"account_id":      event.AccountID,
		"email":           logger.MaskEmail(event.Email),
		"failed_attempts": event.FailedAttempts,
		"lock_until":      event.LockUntil,
		"locked_at":       event.LockedAt,
	}
	p.logEvent("account.locked", event.AccountID, event.LockedAt, payload)
	return nil
}

// PublishLoginSucceeded logs account.login events.
func (p *StubPublisher) PublishLoginSucceeded(_ context.Context, event domain.LoginSucceededEvent) error {
	payload := map[string]any{
		"account_id": event.AccountID,
		"email":      logger.MaskEmail(event.Email),
		"login_at":   event.LoginAt,
	}
	p.logEvent("account.login", event.AccountID, event.LoginAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
