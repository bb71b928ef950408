package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/core/port"
	"github.com/rumonkh0/quizbackend/internal/infra/logger"
	"github.com/rumonkh0/quizbackend/internal/infra/security"
	"github.com/rumonkh0/quizbackend/internal/infra/telemetry"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

// Lockout thresholds are fixed policy, not configuration.
const (
	maxFailedAttempts = 3
	lockoutWindow     = 15 * time.Minute
)

var (
	// ErrMissingFields indicates a required request field is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrPasswordMismatch indicates password and confirmation differ on registration.
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
	// ErrInvalidRole indicates the requested role is outside the closed set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrAccountNotFound indicates no account exists for the given email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountLocked indicates the account was already locked when the attempt arrived.
	ErrAccountLocked = errors.New("account locked")
	// ErrLockoutTriggered indicates this attempt crossed the failed-attempt threshold.
	ErrLockoutTriggered = errors.New("account lockout triggered")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already registered")
)

// InvalidCredentialsError reports a failed password check below the lockout
// threshold, carrying the number of attempts left before the account locks.
type InvalidCredentialsError struct {
	Remaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempts remaining", e.Remaining)
}

// LoginResult carries the authenticated account and its session credential.
type LoginResult struct {
	Account          domain.Account
	Token            string
	AttemptedQuizzes []string
}

// AuthService coordinates registration and the guarded login flow.
type AuthService struct {
	accounts  port.AccountRepository
	quizzes   port.QuizRepository
	issuer    *security.TokenIssuer
	publisher port.EventPublisher
	metrics   *telemetry.AuthMetrics
	log       *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	accounts port.AccountRepository,
	quizzes port.QuizRepository,
	issuer *security.TokenIssuer,
	publisher port.EventPublisher,
	metrics *telemetry.AuthMetrics,
	log *zap.Logger,
) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		accounts:  accounts,
		quizzes:   quizzes,
		issuer:    issuer,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// Register creates a new account. Uniqueness pre-checks are a fast path; the
// database constraints remain authoritative and insert conflicts map to the
// same errors.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirmPassword, role string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	role = strings.TrimSpace(role)

	if username == "" || email == "" || password == "" || confirmPassword == "" || role == "" {
		return ErrMissingFields
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}
	if !domain.Role(role).Valid() {
		return ErrInvalidRole
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.Role(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		var dup *repository.DuplicateKeyError
		if errors.As(err, &dup) {
			switch dup.Constraint {
			case "accounts_username_key":
				return ErrUsernameTaken
			default:
				return ErrEmailTaken
			}
		}
		return fmt.Errorf("create account: %w", err)
	}

	s.metrics.ObserveRegistration()
	s.publishRegistered(ctx, account)

	return nil
}

// Login verifies credentials under the lockout policy and issues a session
// credential. Every state-mutating branch persists before returning.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.ObserveLogin(telemetry.OutcomeNotFound)
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	now := time.Now().UTC()

	// A lock flag whose window has elapsed is stale. Clear it eagerly so the
	// stored state matches the observable one; the counter survives, so the
	// next wrong password at the threshold re-locks immediately.
	if account.AccountLocked && !account.IsLocked(now) {
		account.AccountLocked = false
		account.LockUntil = nil
		account.UpdatedAt = now
		if err := s.accounts.Save(ctx, *account); err != nil {
			return nil, fmt.Errorf("clear stale lock: %w", err)
		}
	}

	if account.IsLocked(now) {
		s.metrics.ObserveLogin(telemetry.OutcomeLocked)
		return nil, ErrAccountLocked
	}

	match, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !match {
		account.FailedLoginAttempts++
		account.UpdatedAt = now

		if account.FailedLoginAttempts >= maxFailedAttempts {
			lockUntil := now.Add(lockoutWindow)
			account.AccountLocked = true
			account.LockUntil = &lockUntil
			if err := s.accounts.Save(ctx, *account); err != nil {
				return nil, fmt.Errorf("persist lockout: %w", err)
			}

			s.metrics.ObserveLogin(telemetry.OutcomeInvalidPassword)
			s.metrics.ObserveLockout()
			s.publishLocked(ctx, *account, lockUntil, now)

			return nil, ErrLockoutTriggered
		}

		if err := s.accounts.Save(ctx, *account); err != nil {
			return nil, fmt.Errorf("persist failed attempt: %w", err)
		}

		s.metrics.ObserveLogin(telemetry.OutcomeInvalidPassword)
		return nil, &InvalidCredentialsError{Remaining: maxFailedAttempts - account.FailedLoginAttempts}
	}

	if account.FailedLoginAttempts != 0 || account.AccountLocked || account.LockUntil != nil {
		account.FailedLoginAttempts = 0
		account.AccountLocked = false
		account.LockUntil = nil
		account.UpdatedAt = now
		if err := s.accounts.Save(ctx, *account); err != nil {
			return nil, fmt.Errorf("reset lockout state: %w", err)
		}
	}

	token, err := s.issuer.Issue(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	attempted, err := s.quizzes.AttemptedQuizIDs(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("list attempted quizzes: %w", err)
	}
	if attempted == nil {
		attempted = []string{}
	}

	s.metrics.ObserveLogin(telemetry.OutcomeSuccess)
	s.publishLogin(ctx, *account, now)

	return &LoginResult{
		Account:          *account,
		Token:            token,
		AttemptedQuizzes: attempted,
	}, nil
}

func (s *AuthService) publishRegistered(ctx context.Context, account domain.Account) {
	if s.publisher == nil {
		return
	}
	event := domain.AccountRegisteredEvent{
		AccountID:    account.ID,
		Username:     account.Username,
		Email:        account.Email,
		Role:         string(account.Role),
		RegisteredAt: account.CreatedAt,
	}
	if err := s.publisher.PublishAccountRegistered(ctx, event); err != nil {
		s.log.Warn("publish account.registered failed",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}
}

func (s *AuthService) publishLocked(ctx context.Context, account domain.Account, lockUntil, lockedAt time.Time) {
	if s.publisher == nil {
		return
	}
	event := domain.AccountLockedEvent{
		AccountID:      account.ID,
		Email:          account.Email,
		FailedAttempts: account.FailedLoginAttempts,
		LockUntil:      lockUntil,
		LockedAt:       lockedAt,
	}
	if err := s.publisher.PublishAccountLocked(ctx, event); err != nil {
		s.log.Warn("publish account.locked failed",
			zap.String("account_id", account.ID),
			zap.String("email", logger.MaskEmail(account.Email)),
			zap.Error(err),
		)
	}
}

func (s *AuthService) publishLogin(ctx context.Context, account domain.Account, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := domain.LoginSucceededEvent{
		AccountID: account.ID,
		Email:     account.Email,
		LoginAt:   at,
	}
	if err := s.publisher.PublishLoginSucceeded(ctx, event); err != nil {
		s.log.Warn("publish account.login failed",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}
}
