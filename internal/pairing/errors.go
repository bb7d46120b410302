package pairing

import (
	"errors"
	"fmt"
)

// PairingError is returned when the engine cannot produce pairings.
// It never wraps a storage failure; those stay in the store package.
type PairingError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// PlayerID is the player the error is about, or zero.
	PlayerID PlayerID

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes pairing errors.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates standings or opponents violate the
	// engine's preconditions.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeNoValidPairing indicates no rematch-free pairing was found.
	ErrCodeNoValidPairing ErrorCode = "NO_VALID_PAIRING"
)

// Error implements the error interface.
func (e *PairingError) Error() string {
	if e.PlayerID != 0 {
		return fmt.Sprintf("%s: %s (player=%d)", e.Code, e.Message, e.PlayerID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidInput returns true if err is an INVALID_INPUT pairing error.
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrCodeInvalidInput)
}

// IsNoValidPairing returns true if err is a NO_VALID_PAIRING pairing error.
func IsNoValidPairing(err error) bool {
	return hasCode(err, ErrCodeNoValidPairing)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *PairingError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

func invalidInput(id PlayerID, format string, args ...any) *PairingError {
	return &PairingError{
		Code:     ErrCodeInvalidInput,
		Message:  fmt.Sprintf(format, args...),
		PlayerID: id,
	}
}

func noValidPairing(id PlayerID, strategy Strategy, details map[string]string) *PairingError {
	if details == nil {
		details = map[string]string{}
	}
	details["strategy"] = string(strategy)
	return &PairingError{
		Code:     ErrCodeNoValidPairing,
		Message:  "player has no remaining opponent they have not already played",
		PlayerID: id,
		Details:  details,
	}
}
