package storage

import (
	"context"
	"testing"

	"shareit/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenMemory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}

	stores, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer stores.Close()

	assert.NotNil(t, stores.Users)
	assert.NotNil(t, stores.Businesses)
	assert.NotNil(t, stores.Recommendations)
	assert.NotNil(t, stores.SavedOffers)
	assert.NotNil(t, stores.Wallets)
	assert.NotNil(t, stores.Connections)
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}

	_, err := Open(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "sqlite")
}
