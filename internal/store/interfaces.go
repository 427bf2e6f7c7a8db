package store

//go:generate mockgen -source=interfaces.go -destination=../mock/snapshot_cache_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/passnode/passnode/models"
)

// CachedSnapshot is the locally persisted copy of the last known remote
// snapshot for one vault kind. The body holds encrypted records only, so the
// cache is as safe at rest as the remote store itself.
type CachedSnapshot struct {
	Kind      string
	CID       models.CID
	Body      []byte
	FetchedAt time.Time
}

// SnapshotCache persists the last pulled or pushed snapshot per vault kind
// so a session can start from known state while the remote store is
// unreachable. One row per kind; writes overwrite.
type SnapshotCache interface {
	// SaveSnapshot stores body as the current snapshot of kind.
	SaveSnapshot(ctx context.Context, kind string, cid models.CID, body []byte) error

	// GetSnapshot returns the cached snapshot of kind, or
	// [ErrSnapshotNotCached] when the kind has never been cached.
	GetSnapshot(ctx context.Context, kind string) (CachedSnapshot, error)
}
