package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/internship-finder/internal/types"
)

// SessionStore persists wizard state in the wizard_sessions table.
// Rows older than ttl are treated as absent and removed by PurgeExpired.
type SessionStore struct {
	db  *DB
	ttl time.Duration
}

// NewSessionStore creates a SessionStore backed by db.
func NewSessionStore(db *DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl}
}

// Load returns the stored state for id, or an empty state when the row is
// missing or stale.
func (s *SessionStore) Load(ctx context.Context, id uuid.UUID) (*types.SessionState, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := s.db.pool.QueryRow(ctx,
		`SELECT state, updated_at FROM wizard_sessions WHERE id = $1`,
		id,
	).Scan(&raw, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &types.SessionState{}, nil
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	if s.ttl > 0 && time.Since(updatedAt) > s.ttl {
		return &types.SessionState{}, nil
	}

	var state types.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &state, nil
}

// Save upserts the state for id.
func (s *SessionStore) Save(ctx context.Context, id uuid.UUID, state *types.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO wizard_sessions (id, state, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET state = $2, updated_at = NOW()`,
		id, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

// PurgeExpired deletes rows idle longer than the store's ttl and returns how
// many were removed.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	tag, err := s.db.pool.Exec(ctx,
		`DELETE FROM wizard_sessions WHERE updated_at < $1`,
		time.Now().Add(-s.ttl),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
