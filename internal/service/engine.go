// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

// Package service implements the vault engine: per-kind sync engines that
// reconcile the in-memory collection with the remote content-addressed
// store, the session context, and the background refresh job.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/passnode/passnode/internal/adapter"
	"github.com/passnode/passnode/internal/keychain"
	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/internal/store"
	"github.com/passnode/passnode/internal/vault"
	"github.com/passnode/passnode/models"
)

// syncEngine is the private implementation of [VaultService] for one vault
// kind. The mutex serializes mutations against each other and against pull
// application; it is never held across network I/O. Each mutation bumps
// mutSeq; a pull captures mutSeq at issue time and its result is applied
// only if mutSeq is unchanged at completion: last writer wins by logical
// mutation order, not by network completion order.
type syncEngine struct {
	kind   models.Kind
	crypto keychain.KeyChainService
	remote adapter.RemoteStore
	cache  store.SnapshotCache
	logger *logger.Logger

	mu       sync.Mutex
	col      *vault.Collection
	mutSeq   uint64
	status   Status
	degraded bool
}

// NewSyncEngine constructs the [VaultService] for kind. cache may be nil;
// the engine then runs without local snapshot fallback.
func NewSyncEngine(kind models.Kind, crypto keychain.KeyChainService, remote adapter.RemoteStore, cache store.SnapshotCache, log *logger.Logger) VaultService {
	return &syncEngine{
		kind:   kind,
		crypto: crypto,
		remote: remote,
		cache:  cache,
		logger: log,
		col:    vault.NewCollection(kind, crypto),
		status: StatusIdle,
	}
}

func (e *syncEngine) Kind() models.Kind {
	return e.kind
}

func (e *syncEngine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *syncEngine) Degraded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.degraded
}

// Initialize implements [VaultService].
func (e *syncEngine) Initialize(ctx context.Context, sess *Session) (int, error) {
	if sess == nil {
		return 0, ErrNoSession
	}

	if !sess.Synced() {
		// Local-only mode: an empty collection, no network call attempted.
		e.mu.Lock()
		e.col = vault.NewCollection(e.kind, e.crypto)
		e.status = StatusReady
		e.mu.Unlock()

		e.logger.Info().
			Str("kind", e.kind.Name).
			Stringer("session", sess.ID()).
			Msg("initialized local-only vault: no credential configured")
		return 0, nil
	}

	e.mu.Lock()
	issued := e.mutSeq
	e.status = StatusPulling
	e.mu.Unlock()

	col, cid, err := e.pull(ctx, sess)
	if err != nil {
		if errors.Is(err, adapter.ErrRemoteUnavailable) {
			return e.initializeFromCache(ctx, sess, err)
		}

		e.setStatus(StatusIdle)
		return 0, err
	}

	applied := e.applyPull(col, issued)
	if applied && cid != "" {
		e.cacheSnapshot(ctx, cid, col)
	}

	e.logger.Info().
		Str("kind", e.kind.Name).
		Stringer("session", sess.ID()).
		Int("records", col.Len()).
		Bool("applied", applied).
		Msg("initial pull complete")

	e.mu.Lock()
	n := e.col.Len()
	e.mu.Unlock()
	return n, nil
}

// initializeFromCache serves the last cached snapshot when the remote store
// is unreachable during Initialize. The transient failure is still reported
// so the caller can surface it; the engine is marked degraded until a later
// refresh succeeds.
func (e *syncEngine) initializeFromCache(ctx context.Context, sess *Session, pullErr error) (int, error) {
	if e.cache == nil {
		e.setStatus(StatusIdle)
		return 0, pullErr
	}

	snap, err := e.cache.GetSnapshot(ctx, e.kind.Name)
	if err != nil {
		if !errors.Is(err, store.ErrSnapshotNotCached) {
			e.logger.Err(err).
				Str("kind", e.kind.Name).
				Msg("cache lookup failed during degraded initialize")
		}
		e.setStatus(StatusIdle)
		return 0, fmt.Errorf("%w: %s", ErrNoSnapshot, pullErr)
	}

	col, err := vault.ParseSnapshot(e.kind, e.crypto, snap.Body)
	if err != nil {
		e.setStatus(StatusIdle)
		return 0, fmt.Errorf("cached snapshot: %w", err)
	}

	e.mu.Lock()
	e.col = col
	e.status = StatusReady
	e.degraded = true
	n := col.Len()
	e.mu.Unlock()

	e.logger.Warn().
		Str("kind", e.kind.Name).
		Stringer("session", sess.ID()).
		Str("cid", string(snap.CID)).
		Time("fetched_at", snap.FetchedAt).
		Msg("remote store unreachable, serving cached snapshot")

	return n, pullErr
}

// Refresh implements [VaultService].
func (e *syncEngine) Refresh(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrNoSession
	}
	if !sess.Synced() {
		return nil
	}

	e.mu.Lock()
	issued := e.mutSeq
	e.status = StatusPulling
	e.mu.Unlock()

	col, cid, err := e.pull(ctx, sess)
	if err != nil {
		// Prior in-memory collection is retained; the failure is transient
		// for ErrRemoteUnavailable and distinct for ErrMalformedSnapshot.
		e.setStatus(StatusReady)
		return err
	}

	applied := e.applyPull(col, issued)
	if applied && cid != "" {
		e.cacheSnapshot(ctx, cid, col)
	}
	if !applied {
		e.logger.Debug().
			Str("kind", e.kind.Name).
			Uint64("issued_seq", issued).
			Msg("discarded stale pull result: local mutation issued after pull")
	}

	return nil
}

// pull lists the uploads of this kind's name, selects the most recent one,
// fetches and parses it. A name with no uploads yields an empty collection,
// not an error.
func (e *syncEngine) pull(ctx context.Context, sess *Session) (*vault.Collection, models.CID, error) {
	uploads, err := e.remote.List(ctx, sess.Credential(), e.kind.Name)
	if err != nil {
		return nil, "", fmt.Errorf("list snapshots for %s: %w", e.kind.Name, err)
	}

	latest, ok := models.LatestUpload(uploads)
	if !ok {
		return vault.NewCollection(e.kind, e.crypto), "", nil
	}

	body, err := e.remote.Fetch(ctx, sess.Credential(), latest.CID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch snapshot %s: %w", latest.CID, err)
	}

	col, err := vault.ParseSnapshot(e.kind, e.crypto, body)
	if err != nil {
		// Never degrade this into "no snapshot found": replacing local state
		// with an empty collection here would be silent data loss.
		return nil, "", fmt.Errorf("snapshot %s: %w", latest.CID, err)
	}

	return col, latest.CID, nil
}

// applyPull installs a pulled collection unless a mutation was issued after
// the pull started. Returns whether the result was applied.
func (e *syncEngine) applyPull(col *vault.Collection, issued uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.status = StatusReady
	if e.mutSeq != issued {
		return false
	}

	e.col = col
	e.degraded = false
	return true
}

// AddRecord implements [VaultService].
func (e *syncEngine) AddRecord(ctx context.Context, sess *Session, plain models.Record) error {
	if sess == nil {
		return ErrNoSession
	}

	e.mu.Lock()
	if err := e.col.Add(plain, sess.Secret()); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mutSeq++
	data, err := e.col.Snapshot()
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.logger.Debug().
		Str("kind", e.kind.Name).
		Stringer("session", sess.ID()).
		Msg("record added")

	return e.push(ctx, sess, data)
}

// RemoveRecord implements [VaultService].
func (e *syncEngine) RemoveRecord(ctx context.Context, sess *Session, target models.Record) (int, error) {
	if sess == nil {
		return 0, ErrNoSession
	}

	e.mu.Lock()
	removed := e.col.RemoveRecord(target, sess.Secret())
	if removed == 0 {
		e.mu.Unlock()
		return 0, nil
	}
	e.mutSeq++
	data, err := e.col.Snapshot()
	e.mu.Unlock()
	if err != nil {
		return removed, err
	}

	if removed > 1 {
		// Possible only if the uniqueness invariant was broken by an
		// externally injected snapshot.
		e.logger.Warn().
			Str("kind", e.kind.Name).
			Int("removed", removed).
			Msg("multiple records matched one designated field value")
	}

	return removed, e.push(ctx, sess, data)
}

// ListRecords implements [VaultService].
func (e *syncEngine) ListRecords(sess *Session) ([]models.Record, error) {
	if sess == nil {
		return nil, ErrNoSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.col.List(sess.Secret()), nil
}

// push uploads the serialized collection under this kind's name. With no
// credential it is a silent no-op: the data stays local-only. A failed push
// is reported but the local mutation stands; only the remote snapshot lags.
func (e *syncEngine) push(ctx context.Context, sess *Session, data []byte) error {
	if !sess.Synced() {
		e.logger.Debug().
			Str("kind", e.kind.Name).
			Msg("push skipped: no credential configured")
		return nil
	}

	e.setStatus(StatusPushing)
	cid, err := e.remote.Upload(ctx, sess.Credential(), e.kind.Name, data)
	e.setStatus(StatusReady)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("kind", e.kind.Name).
			Stringer("session", sess.ID()).
			Msg("push failed, local collection retained")
		return fmt.Errorf("push %s snapshot: %w", e.kind.Name, err)
	}

	e.logger.Info().
		Str("kind", e.kind.Name).
		Stringer("session", sess.ID()).
		Str("cid", string(cid)).
		Msg("pushed snapshot")

	if e.cache != nil {
		if cacheErr := e.cache.SaveSnapshot(ctx, e.kind.Name, cid, data); cacheErr != nil {
			e.logger.Warn().Err(cacheErr).
				Str("kind", e.kind.Name).
				Msg("failed to cache pushed snapshot")
		}
	}

	return nil
}

func (e *syncEngine) cacheSnapshot(ctx context.Context, cid models.CID, col *vault.Collection) {
	if e.cache == nil {
		return
	}

	data, err := col.Snapshot()
	if err != nil {
		return
	}
	if err = e.cache.SaveSnapshot(ctx, e.kind.Name, cid, data); err != nil {
		e.logger.Warn().Err(err).
			Str("kind", e.kind.Name).
			Msg("failed to cache pulled snapshot")
	}
}

func (e *syncEngine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}
