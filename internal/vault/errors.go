package vault

import "errors"

// Sentinel errors returned by collection methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateKey is returned when an added record decrypts to the same
	// value on the kind's designated field as an existing record. The
	// collection is left unchanged; the condition is user-facing, not fatal.
	ErrDuplicateKey = errors.New("record with this key already exists")

	// ErrMalformedSnapshot is returned when a fetched snapshot does not parse
	// as the expected structure. It must never be treated as "no snapshot
	// found": doing so would silently replace local state with an empty
	// collection.
	ErrMalformedSnapshot = errors.New("snapshot is malformed")
)
