package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Award errors
	ErrMsgUnknownActionType = "unknown action type"
	ErrMsgInvalidAmount     = "invalid amount"

	// User errors
	ErrMsgUserNotFound = "user not found"

	// Reward errors
	ErrMsgRewardNotFound = "reward not found"
	ErrMsgRewardNotOwned = "reward not owned"

	// Database/System errors
	ErrMsgPersistenceConflict = "persistence conflict"
	ErrMsgStoreUnavailable    = "store unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Award errors
	ErrUnknownActionType = errors.New(ErrMsgUnknownActionType)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Reward errors
	ErrRewardNotFound = errors.New(ErrMsgRewardNotFound)
	ErrRewardNotOwned = errors.New(ErrMsgRewardNotOwned)

	// Persistence errors. ErrPersistenceConflict signals a detected concurrent
	// conflict; retrying the whole Award call is safe because the retry
	// re-reads the current total. ErrStoreUnavailable is fatal for the call.
	ErrPersistenceConflict = errors.New(ErrMsgPersistenceConflict)
	ErrStoreUnavailable    = errors.New(ErrMsgStoreUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
