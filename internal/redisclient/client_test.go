package redisclient

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := NewFromRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestNewClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	mr.Close()
	_, err = NewClient(mr.Addr(), "", 0)
	assert.ErrorContains(t, err, "redis ping failed")
}

func TestSetStock_GetStock(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetStock(ctx, 1, 49))

	assert.Equal(t, "49", mr.HGet("inventory:1", "available"))
	available, err := client.GetStock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 49, available)
}

func TestSetStock_Negative(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetStock(ctx, 2, -10))

	available, err := client.GetStock(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, -10, available)
}

func TestSyncStock(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	err := client.SyncStock(ctx, []models.Product{
		{ID: 1, Stock: 50},
		{ID: 3, Stock: 100},
	})
	require.NoError(t, err)

	assert.Equal(t, "50", mr.HGet("inventory:1", "available"))
	assert.Equal(t, "100", mr.HGet("inventory:3", "available"))
	assert.NotEmpty(t, mr.HGet("inventory:3", "updated_at"))
}

func TestGetStock_Missing(t *testing.T) {
	client, _ := setupTestRedis(t)

	_, err := client.GetStock(context.Background(), 9)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestGetStock_Corrupt(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.HSet("inventory:4", "available", "lots")

	_, err := client.GetStock(context.Background(), 4)
	assert.ErrorContains(t, err, "invalid mirrored stock")
}

func TestMarkEventProcessed(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	first, err := client.MarkEventProcessed(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := client.MarkEventProcessed(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	mr.FastForward(2 * time.Hour)
	expired, err := client.MarkEventProcessed(ctx, "evt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, expired)
}
