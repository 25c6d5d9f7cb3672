package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/livecanvas/dashboard-backend/internal/bindings/domain"
)

// BindingRepository persists code↔topic bindings in the data_binding table.
type BindingRepository struct {
	db *sql.DB
}

func NewBindingRepository(db *sql.DB) *BindingRepository {
	return &BindingRepository{db: db}
}

const bindingColumns = `id, code, topic, description, created_at, updated_at`

// List returns all bindings, most recently updated first.
func (r *BindingRepository) List(ctx context.Context) ([]domain.Binding, error) {
	q := `SELECT ` + bindingColumns + ` FROM data_binding ORDER BY updated_at DESC;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Binding, 0, 16)
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BindingRepository) Get(ctx context.Context, id string) (*domain.Binding, error) {
	q := `SELECT ` + bindingColumns + ` FROM data_binding WHERE id = $1;`

	b, err := scanBinding(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Create inserts a binding. A duplicate code yields ErrConflict and leaves the
// existing row untouched.
func (r *BindingRepository) Create(ctx context.Context, in domain.CreateInput) (*domain.Binding, error) {
	q := `
INSERT INTO data_binding (id, code, topic, description)
VALUES ($1, $2, $3, $4)
RETURNING ` + bindingColumns + `;
`
	b, err := scanBinding(r.db.QueryRowContext(ctx, q, uuid.NewString(), in.Code, in.Topic, in.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert binding: %w", err)
	}
	return b, nil
}

func (r *BindingRepository) Update(ctx context.Context, id string, in domain.UpdateInput) (*domain.Binding, error) {
	q := `
UPDATE data_binding SET
  code = COALESCE($2, code),
  topic = COALESCE($3, topic),
  description = CASE WHEN $4 THEN $5 ELSE description END,
  updated_at = now()
WHERE id = $1
RETURNING ` + bindingColumns + `;
`
	b, err := scanBinding(r.db.QueryRowContext(ctx, q, id, in.Code, in.Topic, in.SetDescription, in.Description))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update binding: %w", err)
	}
	return b, nil
}

func (r *BindingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM data_binding WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete binding: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinding(row rowScanner) (*domain.Binding, error) {
	var b domain.Binding
	var desc sql.NullString

	if err := row.Scan(&b.ID, &b.Code, &b.Topic, &desc, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		b.Description = &desc.String
	}
	return &b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
