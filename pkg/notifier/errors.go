package notifier

import "errors"

var (
	// ErrCallNotSupported indicates that a notifier ignores a kind of event.
	ErrCallNotSupported = errors.New("call not supported by this notifier")

	// ErrNotifierNotFound indicates that a requested notifier doesn't exist in the registry.
	ErrNotifierNotFound = errors.New("notifier not found in registry")

	// ErrInvalidConfig indicates that a notifier's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid notifier configuration")
)
