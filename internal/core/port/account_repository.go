package port

import (
	"context"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
)

// AccountRepository persists account records keyed by unique email and username.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	// Save persists the lockout state of an existing account: the
	// failed-attempt counter, the lock flag, and the lock window.
	Save(ctx context.Context, account domain.Account) error
}
