package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/models"
)

type snapshotRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSnapshotRepository constructs the SQLite-backed [SnapshotCache].
func NewSnapshotRepository(db *DB, log *logger.Logger) SnapshotCache {
	return &snapshotRepository{db: db, logger: log}
}

// SaveSnapshot implements [SnapshotCache]. One row per kind; a later save
// for the same kind overwrites the previous one.
func (s *snapshotRepository) SaveSnapshot(ctx context.Context, kind string, cid models.CID, body []byte) error {
	query, args, err := sq.Insert("snapshots").
		Columns("kind", "cid", "body", "fetched_at").
		Values(kind, string(cid), body, time.Now().UTC()).
		Suffix("ON CONFLICT(kind) DO UPDATE SET cid = excluded.cid, body = excluded.body, fetched_at = excluded.fetched_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save snapshot query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "snapshotRepository.SaveSnapshot").
			Str("kind", kind).
			Msg("failed to upsert cached snapshot")
		return fmt.Errorf("save cached snapshot (kind=%s): %w", kind, err)
	}

	return nil
}

// GetSnapshot implements [SnapshotCache].
func (s *snapshotRepository) GetSnapshot(ctx context.Context, kind string) (CachedSnapshot, error) {
	query, args, err := sq.Select("kind", "cid", "body", "fetched_at").
		From("snapshots").
		Where(sq.Eq{"kind": kind}).
		ToSql()
	if err != nil {
		return CachedSnapshot{}, fmt.Errorf("build get snapshot query: %w", err)
	}

	var snap CachedSnapshot
	var cid string
	row := s.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&snap.Kind, &cid, &snap.Body, &snap.FetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CachedSnapshot{}, ErrSnapshotNotCached
		}
		s.logger.Err(err).
			Str("func", "snapshotRepository.GetSnapshot").
			Str("kind", kind).
			Msg("failed to scan cached snapshot row")
		return CachedSnapshot{}, fmt.Errorf("get cached snapshot (kind=%s): %w", kind, err)
	}
	snap.CID = models.CID(cid)

	return snap, nil
}
