package store

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a player name is blank after normalization.
	ErrEmptyName = errors.New("player name is empty")

	// ErrSamePlayer is returned when a match names one player on both sides.
	ErrSamePlayer = errors.New("winner and loser are the same player")

	// ErrUnknownPlayer is returned when a match references an unregistered player.
	ErrUnknownPlayer = errors.New("unknown player")
)

// StorageError wraps every failure raised by the store, so callers can
// tell storage problems apart from pairing problems.
type StorageError struct {
	// Op names the store operation that failed.
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError returns true if err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
