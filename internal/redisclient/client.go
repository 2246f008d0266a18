package redisclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/models"

	"github.com/go-redis/redis/v8"
)

// Client mirrors live catalog stock into Redis hashes keyed inventory:<id>.
// The mirror is write-only from the shop's point of view; the catalog stays
// authoritative.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and checks connectivity
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewFromRedis wraps an existing go-redis client
func NewFromRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func stockKey(productID int64) string {
	return fmt.Sprintf("inventory:%d", productID)
}

// SetStock writes the live stock of one product
func (c *Client) SetStock(ctx context.Context, productID int64, available int) error {
	return c.rdb.HSet(ctx, stockKey(productID),
		"available", available,
		"updated_at", time.Now().Unix(),
	).Err()
}

// SyncStock writes every product's stock in one pipeline
func (c *Client) SyncStock(ctx context.Context, products []models.Product) error {
	pipe := c.rdb.Pipeline()
	now := time.Now().Unix()
	for _, p := range products {
		pipe.HSet(ctx, stockKey(p.ID), "available", p.Stock, "updated_at", now)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// GetStock reads the mirrored stock of one product
func (c *Client) GetStock(ctx context.Context, productID int64) (int, error) {
	val, err := c.rdb.HGet(ctx, stockKey(productID), "available").Result()
	if err == redis.Nil {
		return 0, fmt.Errorf("%w: %d not mirrored", models.ErrProductNotFound, productID)
	}
	if err != nil {
		return 0, err
	}

	available, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid mirrored stock %q: %w", val, err)
	}
	return available, nil
}

// MarkEventProcessed records eventID and reports whether it was new
func (c *Client) MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, "processed_event:"+eventID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark event processed: %w", err)
	}
	return ok, nil
}
