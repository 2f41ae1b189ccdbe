package engine

import (
	"errors"
	"fmt"
)

var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient credits")
	ErrUnknownItem       = errors.New("unknown shop item")
	ErrAlreadyCompleted  = errors.New("habit already completed today")
	ErrThemeLocked       = errors.New("gold theme not unlocked")
)

// ValidationError reports a rejected habit editor field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
