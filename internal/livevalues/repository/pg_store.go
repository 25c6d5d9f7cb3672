package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/livecanvas/dashboard-backend/internal/livevalues/domain"
)

// Querier is the slice of *pgxpool.Pool the store uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore keeps live values in the mqtt_value table.
type PGStore struct {
	db Querier
}

func NewPGStore(db Querier) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) List(ctx context.Context) ([]domain.LiveValue, error) {
	const q = `
select code, value, updated_at
from mqtt_value
order by code;
`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list live values: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LiveValue, 0, 32)
	for rows.Next() {
		var v domain.LiveValue
		if err := rows.Scan(&v.Code, &v.Value, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, code string) (*domain.LiveValue, error) {
	const q = `select code, value, updated_at from mqtt_value where code = $1;`

	var v domain.LiveValue
	err := s.db.QueryRow(ctx, q, code).Scan(&v.Code, &v.Value, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get live value: %w", err)
	}
	return &v, nil
}

// Upsert records the latest value for code.
func (s *PGStore) Upsert(ctx context.Context, code, value string) (*domain.LiveValue, error) {
	const q = `
insert into mqtt_value (code, value, updated_at)
values ($1, $2, now())
on conflict (code) do update
set value = excluded.value,
    updated_at = now()
returning code, value, updated_at;
`
	var v domain.LiveValue
	if err := s.db.QueryRow(ctx, q, code, value).Scan(&v.Code, &v.Value, &v.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert live value: %w", err)
	}
	return &v, nil
}
