package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/livecanvas/dashboard-backend/internal/dashboards/domain"
)

const maxIDAttempts = 5

// DashboardRepository persists dashboards in the dashboards table.
type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

const dashboardColumns = `id, name, background, background_image, width, height, elements, created_at, updated_at`

// Create inserts a new dashboard under a freshly generated id.
func (r *DashboardRepository) Create(ctx context.Context, rec domain.Record) (*domain.Record, error) {
	elements := rec.Elements
	if len(elements) == 0 {
		elements = []byte("[]")
	}

	for i := 0; i < maxIDAttempts; i++ {
		id, err := domain.NewTextID(domain.IDPrefix)
		if err != nil {
			return nil, err
		}

		q := `
INSERT INTO dashboards (id, name, background, background_image, width, height, elements)
VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
RETURNING ` + dashboardColumns + `;
`
		out, err := scanRecord(r.db.QueryRowContext(ctx, q,
			id, rec.Name, rec.Background, rec.BackgroundImage, rec.Width, rec.Height, string(elements)))
		if err == nil {
			return out, nil
		}

		// unique violation on id → retry
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, fmt.Errorf("insert dashboard: %w", err)
	}

	return nil, fmt.Errorf("failed to generate unique dashboard id")
}

func (r *DashboardRepository) Get(ctx context.Context, id string) (*domain.Record, error) {
	q := `SELECT ` + dashboardColumns + ` FROM dashboards WHERE id = $1;`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get dashboard: %w", err)
	}
	return rec, nil
}

// List returns dashboard summaries, most recently updated first.
func (r *DashboardRepository) List(ctx context.Context) ([]domain.Summary, error) {
	const q = `
SELECT id, name, background, updated_at
FROM dashboards
ORDER BY updated_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list dashboards: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Summary, 0, 16)
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Background, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update and returns the stored row.
func (r *DashboardRepository) Update(ctx context.Context, id string, p domain.RecordPatch) (*domain.Record, error) {
	var elements any
	if p.Elements != nil {
		elements = string(p.Elements)
	}

	q := `
UPDATE dashboards SET
  name = COALESCE($2, name),
  background = COALESCE($3, background),
  width = COALESCE($4, width),
  height = COALESCE($5, height),
  background_image = CASE WHEN $6 THEN $7 ELSE background_image END,
  elements = COALESCE($8::jsonb, elements),
  updated_at = now()
WHERE id = $1
RETURNING ` + dashboardColumns + `;
`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q,
		id, p.Name, p.Background, p.Width, p.Height, p.SetBackgroundImage, p.BackgroundImage, elements))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update dashboard: %w", err)
	}
	return rec, nil
}

func scanRecord(row *sql.Row) (*domain.Record, error) {
	var rec domain.Record
	var bgImage sql.NullString
	var elements []byte

	if err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Background,
		&bgImage,
		&rec.Width,
		&rec.Height,
		&elements,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if bgImage.Valid {
		rec.BackgroundImage = &bgImage.String
	}
	rec.Elements = elements
	return &rec, nil
}
