package storage_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/guide"
	"github.com/neexbeast/trip-planner/internal/storage"
	"github.com/neexbeast/trip-planner/migrations"
)

// ---- mock Querier ----

type mockQuerier struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.queryRowFn(ctx, sql, args...)
}
func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return m.queryFn(ctx, sql, args...)
}
func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return m.execFn(ctx, sql, args...)
}

// ---- mock pgx.Row ----

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (f *fakeRow) Scan(dest ...any) error { return f.scanFn(dest...) }

// ---- mock pgx.Rows ----

type fakeRows struct {
	rows    [][]any
	idx     int
	rowErr  error
	scanErr error
}

func (f *fakeRows) Next() bool                                   { f.idx++; return f.idx <= len(f.rows) }
func (f *fakeRows) Err() error                                   { return f.rowErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.idx-1]
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		switch v := d.(type) {
		case *uuid.UUID:
			*v = row[i].(uuid.UUID)
		case *int:
			*v = row[i].(int)
		case *string:
			*v = row[i].(string)
		case *time.Time:
			*v = row[i].(time.Time)
		}
	}
	return nil
}

// ---- helpers ----

func guideRow(id uuid.UUID, name string, at time.Time) []any {
	return []any{id, name, 30, "female", 5, "Split", "Sunny", "x_photo.png", at, at}
}

// ---- CreateGuide ----

func TestCreateGuide_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	var capturedArgs []any
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			capturedArgs = args
			assert.Contains(t, sql, "RETURNING created_at, updated_at")
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*time.Time) = now
				*dest[1].(*time.Time) = now
				return nil
			}}
		},
	}

	g := &guide.Guide{
		ID: uuid.New(), Name: "Ana", Age: 34, Gender: "female", YearsExperience: 8,
		City: "Split", CityCondition: "Sunny", PhotoPath: "abc_me.png",
	}
	repo := storage.NewRepositoryWithQuerier(q)
	require.NoError(t, repo.CreateGuide(context.Background(), g))

	require.Len(t, capturedArgs, 8)
	assert.Equal(t, g.ID, capturedArgs[0])
	assert.Equal(t, "Ana", capturedArgs[1])
	assert.Equal(t, 34, capturedArgs[2])
	assert.Equal(t, "abc_me.png", capturedArgs[7])
	assert.Equal(t, now, g.CreatedAt)
	assert.Equal(t, now, g.UpdatedAt)
}

func TestCreateGuide_DBError(t *testing.T) {
	q := &mockQuerier{
		queryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error { return fmt.Errorf("unique violation") }}
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	err := repo.CreateGuide(context.Background(), &guide.Guide{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting guide")
}

// ---- ListGuides ----

func TestListGuides_Found(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	id1, id2 := uuid.New(), uuid.New()
	rows := &fakeRows{rows: [][]any{
		guideRow(id1, "Ana", now),
		guideRow(id2, "Marko", now.Add(-time.Hour)),
	}}

	q := &mockQuerier{
		queryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
			assert.Contains(t, sql, "ORDER BY created_at DESC")
			return rows, nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	results, err := repo.ListGuides(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, id1, results[0].ID)
	assert.Equal(t, "Ana", results[0].Name)
	assert.Equal(t, 30, results[0].Age)
	assert.Equal(t, "Sunny", results[0].CityCondition)
	assert.Equal(t, "Marko", results[1].Name)
}

func TestListGuides_Empty(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
			return &fakeRows{}, nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	results, err := repo.ListGuides(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListGuides_QueryError(t *testing.T) {
	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
			return nil, fmt.Errorf("query failed")
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListGuides(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying guides")
}

func TestListGuides_ScanError(t *testing.T) {
	rows := &fakeRows{
		rows:    [][]any{guideRow(uuid.New(), "Ana", time.Now())},
		scanErr: fmt.Errorf("scan failed"),
	}

	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListGuides(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning")
}

func TestListGuides_RowsErr(t *testing.T) {
	rows := &fakeRows{rowErr: fmt.Errorf("rows iteration error")}

	q := &mockQuerier{
		queryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return rows, nil },
	}

	repo := storage.NewRepositoryWithQuerier(q)
	_, err := repo.ListGuides(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterating")
}

// ---- UpdateCityCondition ----

func TestUpdateCityCondition_Success(t *testing.T) {
	id := uuid.New()
	var capturedArgs []any
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			capturedArgs = args
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	require.NoError(t, repo.UpdateCityCondition(context.Background(), id, "Rainy"))
	assert.Equal(t, []any{id, "Rainy"}, capturedArgs)
}

func TestUpdateCityCondition_NotFound(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	err := repo.UpdateCityCondition(context.Background(), uuid.New(), "Rainy")
	require.ErrorIs(t, err, guide.ErrNotFound)
}

func TestUpdateCityCondition_DBError(t *testing.T) {
	q := &mockQuerier{
		execFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, fmt.Errorf("db error")
		},
	}

	repo := storage.NewRepositoryWithQuerier(q)
	err := repo.UpdateCityCondition(context.Background(), uuid.New(), "Rainy")
	require.Error(t, err)
	assert.False(t, errors.Is(err, guide.ErrNotFound))
	assert.Contains(t, err.Error(), "updating city condition")
}

// ---- NewRepository ----

func TestNewRepository_NotNil(t *testing.T) {
	repo := storage.NewRepository(nil)
	assert.NotNil(t, repo)
}

// ---- Migrate ----

func TestMigrate_NilDB(t *testing.T) {
	_, err := storage.Migrate(context.Background(), nil, migrations.FS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goose provider")
}

func TestMigratePool_NilPool(t *testing.T) {
	_, err := storage.MigratePool(context.Background(), nil, migrations.FS)
	require.Error(t, err)
}

// ---- Connect tests ----

func TestConnect_BadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := storage.Connect(ctx, "postgres://invalid-host-xyz:5432/db?sslmode=disable")
	require.Error(t, err)
}
