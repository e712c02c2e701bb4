package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cointemper/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// CommentCache keeps a short-lived copy of each symbol's thread so the list
// endpoint does not hit postgres on every page load. Every write to a thread
// invalidates its entry.
type CommentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCommentCache connects to Redis and verifies the connection.
func NewCommentCache(redisAddr string, ttl time.Duration) (*CommentCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CommentCache{client: rdb, ttl: ttl}, nil
}

func cacheKey(symbol models.CoinSymbol) string {
	return fmt.Sprintf("comments:symbol:%s", symbol)
}

// Get returns the cached thread for a symbol, or (nil, false) on a miss.
// A nil cache behaves as always-miss so tests run without Redis.
func (c *CommentCache) Get(ctx context.Context, symbol models.CoinSymbol) ([]models.Comment, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, cacheKey(symbol)).Bytes()
	if err != nil {
		return nil, false
	}

	var comments []models.Comment
	if err := json.Unmarshal(payload, &comments); err != nil {
		return nil, false
	}
	return comments, true
}

// Set stores the thread for a symbol with the configured TTL.
func (c *CommentCache) Set(ctx context.Context, symbol models.CoinSymbol, comments []models.Comment) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(comments)
	if err != nil {
		return
	}
	// Cache failures are not worth failing the request over.
	c.client.Set(ctx, cacheKey(symbol), payload, c.ttl)
}

// Invalidate drops the cached thread for a symbol.
func (c *CommentCache) Invalidate(ctx context.Context, symbol models.CoinSymbol) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, cacheKey(symbol))
}
