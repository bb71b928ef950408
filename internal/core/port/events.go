package port

import (
	"context"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
)

// EventPublisher delivers account lifecycle events to interested consumers.
// Implementations must be safe for concurrent use.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event domain.AccountRegisteredEvent) error
	PublishAccountLocked(ctx context.Context, event domain.AccountLockedEvent) error
	PublishLoginSucceeded(ctx context.Context, event domain.LoginSucceededEvent) error
}
