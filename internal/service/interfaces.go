package service

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/passnode/passnode/models"
)

// Status is the sync engine's position in its lifecycle per vault kind:
// Idle → Pulling → Ready ⇄ Pushing, terminal only on session end.
type Status int

const (
	StatusIdle Status = iota
	StatusPulling
	StatusReady
	StatusPushing
)

// String implements fmt.Stringer for status display.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPulling:
		return "pulling"
	case StatusReady:
		return "ready"
	case StatusPushing:
		return "pushing"
	default:
		return "unknown"
	}
}

// VaultService is the engine surface of one vault kind. All mutations are
// serialized per kind; distinct kinds are fully independent and may have
// in-flight operations concurrently.
//
// Every successful mutation pushes the full updated collection to the remote
// store; that push is the system's only consistency mechanism. A push
// failure is reported but never rolls back the local mutation: local state
// is the source of truth for the current session, only the remote snapshot
// may lag.
type VaultService interface {
	// Kind returns the vault kind this engine manages.
	Kind() models.Kind

	// Status returns the engine's current lifecycle state.
	Status() Status

	// Degraded reports whether the engine currently serves records from the
	// local cache because the remote store was unreachable.
	Degraded() bool

	// Initialize performs the initial pull for sess and returns the number
	// of records loaded. With no credential configured it succeeds with an
	// empty collection and no network call. When the remote store is
	// unreachable it falls back to the cached snapshot, marks the engine
	// degraded, and still reports the transient failure.
	Initialize(ctx context.Context, sess *Session) (int, error)

	// Refresh re-pulls the latest remote snapshot. The result is applied
	// only if no local mutation was issued after the pull started; a stale
	// result is discarded. On failure the prior collection is retained.
	Refresh(ctx context.Context, sess *Session) error

	// AddRecord adds plain to the collection and pushes. Fails with
	// [vault.ErrDuplicateKey], without state change, when an existing record
	// decrypts to the same designated field value.
	AddRecord(ctx context.Context, sess *Session, plain models.Record) error

	// RemoveRecord removes every record matching target's designated field
	// and pushes if anything was removed. Returns the number removed.
	RemoveRecord(ctx context.Context, sess *Session, target models.Record) (int, error)

	// ListRecords returns decrypted views of all records in display order.
	ListRecords(sess *Session) ([]models.Record, error)
}

// RefreshJob periodically re-pulls all vault kinds in the background.
type RefreshJob interface {
	// Start launches the background refresh loop with the given interval.
	// A non-positive interval falls back to a default.
	Start(ctx context.Context, sess *Session, interval time.Duration)

	// Stop cancels the loop and waits for it to exit. Safe to call when the
	// job is not running.
	Stop()
}
