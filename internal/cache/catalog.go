// Package cache кэширует каталог товаров в Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmeshcher/venueops/internal/model"
)

const catalogKey = "venueops:catalog:products"

// DefaultTTL время жизни закэшированного каталога.
const DefaultTTL = 5 * time.Minute

// ErrMiss возвращается, если каталога нет в кэше.
var ErrMiss = errors.New("catalog cache miss")

// Config параметры кэша каталога.
type Config struct {
	RedisClient *redis.Client
	// TTL по умолчанию DefaultTTL.
	TTL time.Duration
}

// Catalog кэш каталога товаров.
type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalog создаёт кэш и проверяет соединение с Redis.
func NewCatalog(ctx context.Context, cfg *Config) (*Catalog, error) {
	if cfg == nil || cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Catalog{client: cfg.RedisClient, ttl: ttl}, nil
}

// Get возвращает каталог из кэша.
func (c *Catalog) Get(ctx context.Context) ([]model.Product, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return products, nil
}

// Set сохраняет каталог в кэш.
func (c *Catalog) Set(ctx context.Context, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set catalog: %w", err)
	}
	return nil
}

// Invalidate удаляет каталог из кэша.
func (c *Catalog) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog: %w", err)
	}
	return nil
}
