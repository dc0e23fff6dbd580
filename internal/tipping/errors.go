package tipping

import "errors"

var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrUnknownTeam      = errors.New("unknown team")
	ErrUnknownGame      = errors.New("unknown game")
	ErrUnknownGlobalBet = errors.New("unknown global bet")
	ErrInvalidTimestamp = errors.New("invalid timestamp, expected YYYY MM DD HH:MM")
	ErrBettingClosed    = errors.New("betting closed")
	ErrInvalidScore     = errors.New("scores must not be negative")
	ErrInvalidInput     = errors.New("invalid input")

	// ErrPersistence is returned by Session.Release when the snapshot could
	// not be written. The in-memory state already holds the change.
	ErrPersistence = errors.New("snapshot write failed")
)

var validationErrors = []error{
	ErrDuplicateKey,
	ErrUnknownTeam,
	ErrUnknownGame,
	ErrUnknownGlobalBet,
	ErrInvalidTimestamp,
	ErrBettingClosed,
	ErrInvalidScore,
	ErrInvalidInput,
}

// IsValidation reports whether err is a user-facing validation failure that
// left the aggregate untouched.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
