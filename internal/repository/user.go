package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fatihahmukti-create/Marko-AI/internal/models"
)

type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates the user repository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A duplicate email maps to ErrConflict.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, name *string, photoURL *string) (models.User, error) {
	var user models.User

	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, photo_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, password_hash, name, photo_url, created_at, updated_at`,
		email, passwordHash, name, photoURL,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.PhotoURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user, ErrConflict
		}
		return user, err
	}

	return user, nil
}

// GetByEmail returns a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, email, password_hash, name, photo_url, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email,
	)
}

// GetByID returns a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, email, password_hash, name, photo_url, created_at, updated_at
		 FROM users
		 WHERE id = $1`,
		id,
	)
}

// UpdatePhotoURL stores the public URL of an uploaded profile photo.
func (r *UserRepository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE users
		 SET photo_url = $2, updated_at = NOW()
		 WHERE id = $1`,
		id, photoURL,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (models.User, error) {
	var user models.User

	err := r.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.PhotoURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, ErrNotFound
		}
		return user, err
	}

	return user, nil
}
