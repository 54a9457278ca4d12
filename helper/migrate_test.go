package helper

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billiard/config"
)

func migrateConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.MigrationSource = "file://migrations/postgres"
	cfg.DB.Postgres.Write.Host = "db.local"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "billiard"
	cfg.DB.Postgres.Write.Password = "p@ss/word?"
	cfg.DB.Postgres.Write.Name = "billiard"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	return cfg
}

func TestDatabaseURL(t *testing.T) {
	t.Run("credentials are escaped", func(t *testing.T) {
		parsed, err := url.Parse(databaseURL(migrateConfig()))
		require.NoError(t, err)

		password, _ := parsed.User.Password()
		assert.Equal(t, "postgres", parsed.Scheme)
		assert.Equal(t, "billiard", parsed.User.Username())
		assert.Equal(t, "p@ss/word?", password)
		assert.Equal(t, "db.local:5432", parsed.Host)
		assert.Equal(t, "/billiard", parsed.Path)
		assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
		assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
	})

	t.Run("prefix is prepended to the database name", func(t *testing.T) {
		cfg := migrateConfig()
		cfg.DB.Postgres.Prefix = "test_"

		parsed, err := url.Parse(databaseURL(cfg))
		require.NoError(t, err)
		assert.Equal(t, "/test_billiard", parsed.Path)
	})
}

func TestRunner_UnknownAction(t *testing.T) {
	err := Runner(migrateConfig(), "sideways")

	require.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), `"sideways"`)
}

func TestRunner_KnownActions(t *testing.T) {
	for _, action := range []string{"up", "step-up", "down", "drop", "version"} {
		_, ok := migrations[action]
		assert.True(t, ok, action)
	}
}
