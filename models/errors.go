package models

import "errors"

// Error kinds the handlers branch on with errors.Is. Service code wraps the
// underlying cause with fmt.Errorf("...: %w", ...) around these.
var (
	// ErrStoreUnavailable means the remote store could not be reached or
	// authenticated at all. Fatal for the render cycle that hit it.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreWrite means a single append or cell update failed. Reported to
	// the user; optimistic local state is kept as-is.
	ErrStoreWrite = errors.New("store write failed")

	// ErrEstimation means the nutrition service errored or returned something
	// unparseable. Nothing is persisted on this path.
	ErrEstimation = errors.New("estimation failed")

	ErrUnknownUser = errors.New("unknown user")
	ErrUnknownMeal = errors.New("unknown meal")
	ErrEmptyItems  = errors.New("no items entered")
)
