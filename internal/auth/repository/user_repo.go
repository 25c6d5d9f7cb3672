package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/livecanvas/dashboard-backend/internal/auth/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, usercode, username, password_hash, active, created_at, updated_at`

// Create inserts a new active user. A taken usercode yields ErrUsercodeTaken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, usercode, username, password_hash, active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING active, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, user.ID, user.Usercode, user.Username, user.PasswordHash).
		Scan(&user.Active, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrUsercodeTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsercode looks a user up by usercode, active or not.
func (r *UserRepository) GetByUsercode(ctx context.Context, usercode string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE usercode = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, usercode))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdateUsername changes the display name of an active user.
func (r *UserRepository) UpdateUsername(ctx context.Context, id, username string) (*domain.User, error) {
	query := `
		UPDATE users
		SET username = $2, updated_at = NOW()
		WHERE id = $1 AND active
		RETURNING ` + userColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, username))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND active
	`
	return r.execOne(ctx, query, id, passwordHash)
}

// Deactivate soft-deletes the user.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND active
	`
	return r.execOne(ctx, query, id)
}

func (r *UserRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Usercode,
		&user.Username,
		&user.PasswordHash,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
