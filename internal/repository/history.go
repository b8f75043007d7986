package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository stores each user's history list as a single JSON blob in
// one row. The history store rewrites the full blob on every mutation.
type HistoryRepository struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates the history blob repository.
func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Load returns the user's serialized history list, or ErrNotFound when the
// user has never saved one.
func (r *HistoryRepository) Load(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var blob []byte

	err := r.db.QueryRow(ctx,
		`SELECT items
		 FROM plan_history
		 WHERE user_id = $1`,
		userID,
	).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return blob, nil
}

// Save overwrites the user's serialized history list in full.
func (r *HistoryRepository) Save(ctx context.Context, userID uuid.UUID, blob []byte) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO plan_history (user_id, items, updated_at)
		 VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()`,
		userID, string(blob),
	)
	return err
}
