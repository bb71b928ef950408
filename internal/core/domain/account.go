package domain

import "time"

// Role enumerates the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Account mirrors the persisted representation in the accounts table.
// The lockout fields are mutated only by the login flow.
type Account struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        string
	Role                Role
	FailedLoginAttempts int
	AccountLocked       bool
	LockUntil           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked reports whether the account is locked at the given instant.
// AccountLocked alone is not authoritative: once LockUntil elapses the
// account is treated as unlocked even if the flag was never cleared.
func (a Account) IsLocked(now time.Time) bool {
	return a.AccountLocked && a.LockUntil != nil && a.LockUntil.After(now)
}
