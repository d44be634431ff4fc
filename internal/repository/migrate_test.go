package repository

import (
	"strings"
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource_EmbedsSubscribersTable(t *testing.T) {
	t.Parallel()

	migrations, err := migrationSource().FindMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	first := migrations[0]
	assert.Equal(t, "0001_subscribers.sql", first.Id)

	up := strings.Join(first.Up, "\n")
	assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS subscribers")
	assert.Contains(t, up, "UNIQUE (email)")

	down := strings.Join(first.Down, "\n")
	assert.Contains(t, down, "DROP TABLE IF EXISTS subscribers")
}

func TestDirectionName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "up", directionName(migrate.Up))
	assert.Equal(t, "down", directionName(migrate.Down))
}
