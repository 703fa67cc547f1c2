package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSnapshotStore reads the newest row of project_snapshots.
type PostgresSnapshotStore struct {
	db *pgxpool.Pool
}

func NewPostgresSnapshotStore(db *pgxpool.Pool) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

func (s *PostgresSnapshotStore) Latest(ctx context.Context) (*domain.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRow(ctx,
		`SELECT payload FROM project_snapshots
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	snap := &domain.Snapshot{}
	if err := json.Unmarshal(payload, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return snap, nil
}
