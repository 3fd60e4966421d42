package services

import (
	"errors"

	"gorm.io/gorm"
)

// Error kinds returned by the catalog core. Callers match them with
// errors.Is; nothing here is fatal to the process.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidParent     = errors.New("invalid parent review")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidReaction   = errors.New("reaction must be Like or Dislike")
	ErrInvalidBook       = errors.New("invalid book attributes")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflicting concurrent write")
)

// StorageError wraps a driver-level failure. Callers should treat it as
// retryable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr maps gorm errors onto the service error kinds.
func storageErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return &StorageError{Op: op, Err: err}
	}
}
