package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wargame-go/internal/netline"
	"github.com/mcoot/wargame-go/internal/storage/memory"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)

	assert.IsType(t, &memory.Storage{}, app.Storage)
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.Pool)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.Error(t, err)
}

func TestNewRequiresRedisConfigForRedis(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestWiredAppPlaysAGame(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)

	app.Pool.AcceptNewClient("A", netline.NewFakeConn())
	app.Pool.AcceptNewClient("B", netline.NewFakeConn())

	g, err := app.Pool.CreateGameIfPossible(context.Background())
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 52, g.TotalCards())
}
