package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// LatestRatesKey is the redis key holding the serialized latest rates.
const LatestRatesKey = "latest_rates"

// RedisAdapter caches the latest official rates in redis.
type RedisAdapter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisAdapter creates a cache over an existing client.
func NewRedisAdapter(client *redis.Client, ttl time.Duration) *RedisAdapter {
	return &RedisAdapter{client: client, ttl: ttl}
}

// GetLatestRates returns nil, nil on a cache miss.
func (a *RedisAdapter) GetLatestRates(ctx context.Context) (*domain.LatestRates, error) {
	data, err := a.client.Get(ctx, LatestRatesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest rates from redis: %w", err)
	}

	var rates domain.LatestRates
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal latest rates: %w", err)
	}
	return &rates, nil
}

// SetLatestRates overwrites the cached value. Only writers that just read
// committed data may call it.
func (a *RedisAdapter) SetLatestRates(ctx context.Context, rates domain.LatestRates) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to marshal latest rates: %w", err)
	}
	if err := a.client.Set(ctx, LatestRatesKey, data, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set latest rates in redis: %w", err)
	}
	return nil
}

// FillLatestRates stores rates only when the key is absent, so a reader that
// loaded rows before a refresh cannot replace the refreshed value.
func (a *RedisAdapter) FillLatestRates(ctx context.Context, rates domain.LatestRates) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to marshal latest rates: %w", err)
	}
	if err := a.client.SetNX(ctx, LatestRatesKey, data, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to fill latest rates in redis: %w", err)
	}
	return nil
}

// InvalidateLatestRates drops the cached value so the next read goes to the database.
func (a *RedisAdapter) InvalidateLatestRates(ctx context.Context) error {
	if err := a.client.Del(ctx, LatestRatesKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate latest rates: %w", err)
	}
	return nil
}
