package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/migrations"
)

func TestFS_ContainsGooseMigrations(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		b, err := fs.ReadFile(migrations.FS, f)
		require.NoError(t, err)
		body := string(b)
		assert.True(t, strings.Contains(body, "-- +goose Up"), "%s has no Up section", f)
		assert.True(t, strings.Contains(body, "-- +goose Down"), "%s has no Down section", f)
	}
}

func TestFS_CreatesGuidesTable(t *testing.T) {
	b, err := fs.ReadFile(migrations.FS, "00001_create_guides.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "CREATE TABLE guides")
}
