package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

var accountColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"role",
	"failed_login_attempts",
	"account_locked",
	"lock_until",
	"created_at",
	"updated_at",
}

// AccountRepository implements port.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAccountRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewAccountRepository(exec pgExecutor) *AccountRepository {
	repo := &AccountRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// Create inserts a new account row. Unique violations on email or username
// surface as *repository.DuplicateKeyError.
func (r *AccountRepository) Create(ctx context.Context, account domain.Account) error {
	stmt, args, err := r.builder.Insert("edu.accounts").
		Columns(accountColumns...).
		Values(
			account.ID,
			account.Username,
			account.Email,
			account.PasswordHash,
			account.Role,
			account.FailedLoginAttempts,
			account.AccountLocked,
			account.LockUntil,
			account.CreatedAt,
			account.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert account: %w", mapWriteError(err))
	}

	return nil
}

// GetByID retrieves an account by identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an account by its unique email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

// GetByUsername retrieves an account by its unique username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.getBy(ctx, squirrel.Eq{"username": username})
}

func (r *AccountRepository) getBy(ctx context.Context, pred squirrel.Eq) (*domain.Account, error) {
	stmt, args, err := r.builder.
		Select(accountColumns...).
		From("edu.accounts").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var (
		account   domain.Account
		lockUntil *time.Time
	)
	if err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.FailedLoginAttempts,
		&account.AccountLocked,
		&lockUntil,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	account.LockUntil = lockUntil
	return &account, nil
}

// Save persists the lockout state of an existing account. The update is
// scoped to those columns so concurrent logins cannot clobber the credential.
func (r *AccountRepository) Save(ctx context.Context, account domain.Account) error {
	stmt, args, err := r.builder.Update("edu.accounts").
		Set("failed_login_attempts", account.FailedLoginAttempts).
		Set("account_locked", account.AccountLocked).
		Set("lock_until", account.LockUntil).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": account.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update account sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", mapWriteError(err))
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.AccountRepository = (*AccountRepository)(nil)
