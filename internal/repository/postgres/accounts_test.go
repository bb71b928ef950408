package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

func TestAccountRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	now := time.Now().UTC()
	account := domain.Account{
		ID:           "acc-1",
		Username:     "learner",
		Email:        "learner@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(`INSERT INTO edu\.accounts`).
		WithArgs(
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
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_CreateDuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`INSERT INTO edu\.accounts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	err = repo.Create(context.Background(), domain.Account{ID: "acc-1"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	var dup *repository.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Constraint != "accounts_email_key" {
		t.Fatalf("expected constraint accounts_email_key, got %v", err)
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	now := time.Now().UTC()
	lockUntil := now.Add(15 * time.Minute)

	rows := pgxmock.NewRows(accountColumns).AddRow(
		"acc-1", "learner", "learner@example.com", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA", domain.RoleUser,
		3, true, &lockUntil, now, now,
	)

	mock.ExpectQuery(`SELECT .*FROM edu\.accounts`).
		WithArgs("learner@example.com").
		WillReturnRows(rows)

	account, err := repo.GetByEmail(context.Background(), "learner@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if account.FailedLoginAttempts != 3 || !account.AccountLocked {
		t.Fatalf("unexpected lockout state: %+v", account)
	}
	if account.LockUntil == nil || !account.LockUntil.Equal(lockUntil) {
		t.Fatalf("expected lock_until populated")
	}
}

func TestAccountRepository_GetByEmailNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM edu\.accounts`).
		WithArgs("missing@example.com").
		WillReturnRows(pgxmock.NewRows(accountColumns))

	_, err = repo.GetByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	lockUntil := time.Now().UTC().Add(15 * time.Minute)
	account := domain.Account{
		ID:                  "acc-1",
		PasswordHash:        "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		FailedLoginAttempts: 3,
		AccountLocked:       true,
		LockUntil:           &lockUntil,
	}

	// The update touches only the lockout columns; password_hash must not
	// appear in the statement.
	mock.ExpectExec(`UPDATE edu\.accounts SET failed_login_attempts = \$1, account_locked = \$2, lock_until = \$3, updated_at = \$4 WHERE id = \$5`).
		WithArgs(
			account.FailedLoginAttempts,
			account.AccountLocked,
			account.LockUntil,
			pgxmock.AnyArg(),
			account.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.Save(context.Background(), account); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_SaveMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectExec(`UPDATE edu\.accounts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Save(context.Background(), domain.Account{ID: "missing"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_GetByEmailWrappedNoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewAccountRepository(mock)

	mock.ExpectQuery(`SELECT .*FROM edu\.accounts`).
		WithArgs("missing@example.com").
		WillReturnError(fmt.Errorf("acquire connection: %w", pgx.ErrNoRows))

	_, err = repo.GetByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrapped ErrNoRows, got %v", err)
	}
}
