package postgres

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		content, err := fs.ReadFile(migrationFS, name)
		require.NoError(t, err)
		assert.Contains(t, string(content), "-- +goose Up", name)
		assert.Contains(t, string(content), "-- +goose Down", name)
	}

	schema, err := fs.ReadFile(migrationFS, "migrations/00001_init_schema.sql")
	require.NoError(t, err)
	for _, table := range []string{"categories", "platforms", "prompts", "prompt_analytics", "generated_prompts"} {
		assert.True(t, strings.Contains(string(schema), "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
}

func TestMigrate_UnknownCommand(t *testing.T) {
	t.Parallel()

	err := Migrate(context.Background(), nil, "create", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
