package postgres

import (
	"testing"

	"shareit/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host: "db", Port: "5432", User: "shareit", Password: "secret", DBName: "shareit", SSLMode: "disable",
	})
	assert.Equal(t, "host=db port=5432 user=shareit password=secret dbname=shareit sslmode=disable", dsn)
}

func TestMigrationFiles(t *testing.T) {
	names, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_init.sql", names[0])

	body, err := migrations.ReadFile(names[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "saved_offers_user_recommendation_key UNIQUE (user_id, recommendation_id)")
	assert.Contains(t, string(body), "saved_offer_id UUID NOT NULL UNIQUE")
}
