package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

type RefreshTokenRepository struct {
	db *pgxpool.Pool
}

// NewRefreshTokenRepository creates the refresh token repository.
func NewRefreshTokenRepository(db *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a refresh token.
func (r *RefreshTokenRepository) Create(ctx context.Context, token models.RefreshToken) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt,
	)
	return err
}

// GetByID returns a refresh token by id.
func (r *RefreshTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (models.RefreshToken, error) {
	var token models.RefreshToken

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at, revoked_at, replaced_by
		 FROM refresh_tokens
		 WHERE id = $1`,
		id,
	).Scan(&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt, &token.RevokedAt, &token.ReplacedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return token, ErrNotFound
		}
		return token, err
	}

	return token, nil
}

// Revoke marks a refresh token as revoked.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens
		 SET revoked_at = NOW(), replaced_by = $2
		 WHERE id = $1 AND revoked_at IS NULL`,
		id, replacedBy,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Rotate atomically replaces an old refresh token with a new one.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldID uuid.UUID, newToken models.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		newToken.ID, newToken.UserID, newToken.TokenHash, newToken.ExpiresAt,
	)
	if err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx,
		`UPDATE refresh_tokens
		 SET revoked_at = NOW(), replaced_by = $2
		 WHERE id = $1 AND revoked_at IS NULL`,
		oldID, newToken.ID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
