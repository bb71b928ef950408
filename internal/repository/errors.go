package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a unique constraint rejected the write.
	ErrDuplicate = errors.New("repository: duplicate key")
)

// DuplicateKeyError carries the violated constraint name so callers can map
// the conflict to a field-specific response. It matches ErrDuplicate under
// errors.Is.
type DuplicateKeyError struct {
	Constraint string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("repository: duplicate key on constraint %q", e.Constraint)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicate
}
