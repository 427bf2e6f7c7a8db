package store

import "errors"

// Sentinel errors returned by cache methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSnapshotNotCached is returned when no snapshot has ever been cached
	// for the requested vault kind.
	ErrSnapshotNotCached = errors.New("no cached snapshot for kind")
)
