package adapter

import "errors"

// Sentinel errors returned by the remote store adapter. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnauthorized is returned when the storage service rejects the
	// credential (HTTP 401/403).
	ErrUnauthorized = errors.New("remote store rejected credential")

	// ErrNotFound is returned when a fetch targets a content identifier the
	// store does not know (HTTP 404).
	ErrNotFound = errors.New("content not found in remote store")

	// ErrRemoteUnavailable is returned on transport failures and server-side
	// errors. The condition is transient: the caller retains its local state
	// and may retry.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)
