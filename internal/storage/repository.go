package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/trip-planner/internal/guide"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides database access for local-guide records.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// CreateGuide inserts g and fills in the database timestamps.
func (r *Repository) CreateGuide(ctx context.Context, g *guide.Guide) error {
	const q = `
		INSERT INTO guides (id, name, age, gender, years_experience, city, city_condition, photo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, q,
		g.ID,
		g.Name,
		g.Age,
		g.Gender,
		g.YearsExperience,
		g.City,
		g.CityCondition,
		g.PhotoPath,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting guide %s: %w", g.ID, err)
	}

	return nil
}

// ListGuides returns all guides, newest first.
func (r *Repository) ListGuides(ctx context.Context) ([]*guide.Guide, error) {
	const q = `
		SELECT id, name, age, gender, years_experience, city, city_condition, photo_path, created_at, updated_at
		FROM guides
		ORDER BY created_at DESC, id
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying guides: %w", err)
	}
	defer rows.Close()

	var results []*guide.Guide
	for rows.Next() {
		var g guide.Guide
		if err := rows.Scan(
			&g.ID,
			&g.Name,
			&g.Age,
			&g.Gender,
			&g.YearsExperience,
			&g.City,
			&g.CityCondition,
			&g.PhotoPath,
			&g.CreatedAt,
			&g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning guide row: %w", err)
		}
		results = append(results, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating guide rows: %w", err)
	}

	return results, nil
}

// UpdateCityCondition sets city_condition on one guide.
// Returns guide.ErrNotFound when no row matches id.
func (r *Repository) UpdateCityCondition(ctx context.Context, id uuid.UUID, condition string) error {
	const q = `
		UPDATE guides
		SET city_condition = $2,
		    updated_at     = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, q, id, condition)
	if err != nil {
		return fmt.Errorf("updating city condition for guide %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("guide %s: %w", id, guide.ErrNotFound)
	}

	return nil
}
