package database

import (
	"path/filepath"
	"strings"
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadMigrations(t *testing.T) []*migrate.Migration {
	t.Helper()
	src := &migrate.FileMigrationSource{Dir: filepath.Join("..", "..", "..", MigrationsDir)}
	migrations, err := src.FindMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	return migrations
}

func TestMigrations_HaveUpAndDown(t *testing.T) {
	for _, m := range loadMigrations(t) {
		assert.NotEmpty(t, m.Up, m.Id)
		assert.NotEmpty(t, m.Down, m.Id)
	}
}

func TestMigrations_ScalarColumnsEndAsText(t *testing.T) {
	var ups []string
	for _, m := range loadMigrations(t) {
		ups = append(ups, m.Up...)
	}
	up := strings.Join(ups, "\n")

	for _, column := range []string{"title", "date", "duration"} {
		assert.Contains(t, up, "ALTER COLUMN "+column+" TYPE TEXT")
	}
}
