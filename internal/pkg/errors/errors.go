package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden covers owner/admin mismatches on otherwise valid requests.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation is a generic sentinel for malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition rejects a lifecycle mutation whose precondition
	// does not hold. No state is touched when this is returned.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNoCurrentEntry signals a ledger-consistency anomaly: a reset or
	// supersede found no current entry to act on. Surfaced, never swallowed.
	ErrNoCurrentEntry = errors.New("no current history entry")
	// ErrConflict reports an optimistic-lock failure: the paper was updated
	// concurrently and the caller must reload and retry.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrDispatchFailed marks a notification that could not be delivered.
	// It is recorded on the event row and never propagated to the caller.
	ErrDispatchFailed = errors.New("notification dispatch failed")
)
