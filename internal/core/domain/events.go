package domain

import "time"

// AccountRegisteredEvent is emitted after a new account is created.
type AccountRegisteredEvent struct {
	EventID      string
	AccountID    string
	Username     string
	Email        string
	Role         string
	RegisteredAt time.Time
}

// AccountLockedEvent is emitted when the failed-attempt threshold
// triggers a temporary lockout.
type AccountLockedEvent struct {
	EventID        string
	AccountID      string
	Email          string
	FailedAttempts int
	LockUntil      time.Time
	LockedAt       time.Time
}

// LoginSucceededEvent is emitted after a successful credential check.
type LoginSucceededEvent struct {
	EventID   string
	AccountID string
	Email     string
	LoginAt   time.Time
}
