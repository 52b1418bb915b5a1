package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failing operation leaves the ledger unchanged.
var (
	ErrInvalidFriend  = errors.New("ledger: invalid friend")
	ErrInvalidExpense = errors.New("ledger: invalid expense")
	ErrFriendInUse    = errors.New("ledger: friend is involved in one or more expenses")
	ErrNotFound       = errors.New("ledger: not found")
)

// ValidationError describes which field of a request was rejected.
// It unwraps to ErrInvalidExpense or ErrInvalidFriend.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Kind, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalidExpense(field, format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidExpense, Field: field, Message: fmt.Sprintf(format, args...)}
}

func invalidFriend(field, format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidFriend, Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsInvalid reports whether err is a rejected-input error.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidExpense) || errors.Is(err, ErrInvalidFriend)
}
