// Package cache is a Redis read-through cache for serialized products.
// A nil *ProductCache is a valid, disabled cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-service/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "storefront:product:"
	ProductListCachePrefix = "storefront:products:v:"
	CacheVersionKey        = "storefront:products:version"

	DefaultCacheTTL = 5 * time.Minute

	writeTimeout = 5 * time.Second
)

// ProductCache caches API-shaped products. Products are never updated, so
// single-product entries only expire; list entries are invalidated by
// bumping a version counter whenever a product is inserted.
type ProductCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductCache{redis: client, ttl: ttl, log: log}
}

// NewFromURL parses a redis:// URL and builds a cache around a new client.
func NewFromURL(url string, ttl time.Duration, log *zap.Logger) (*ProductCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewProductCache(redis.NewClient(opts), ttl, log), nil
}

func (c *ProductCache) Enabled() bool {
	return c != nil && c.redis != nil
}

// GetProduct returns the cached product with the given hex id.
func (c *ProductCache) GetProduct(ctx context.Context, id string) (database.Document, bool) {
	if !c.Enabled() {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, ProductCachePrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("product cache read failed", zap.String("product_id", id), zap.Error(err))
		}
		return nil, false
	}

	var doc database.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.log.Warn("Failed to unmarshal cached product", zap.String("product_id", id), zap.Error(err))
		return nil, false
	}
	return doc, true
}

// SetProductAsync caches a product in the background.
func (c *ProductCache) SetProductAsync(id string, doc database.Document) {
	if !c.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := c.set(ctx, ProductCachePrefix+id, doc); err != nil {
			c.log.Warn("Failed to cache product", zap.String("product_id", id), zap.Error(err))
		}
	}()
}

// GetList returns the cached product list together with the list version
// it was looked up under. On a miss the version is still returned so the
// caller can store a freshly read list under it; 0 means no version could
// be read and nothing should be stored.
func (c *ProductCache) GetList(ctx context.Context) ([]database.Document, int64, bool) {
	if !c.Enabled() {
		return nil, 0, false
	}
	version, err := c.version(ctx)
	if err != nil {
		c.log.Debug("product list version read failed", zap.Error(err))
		return nil, 0, false
	}
	raw, err := c.redis.Get(ctx, listKey(version)).Bytes()
	if err != nil {
		return nil, version, false
	}
	docs := make([]database.Document, 0)
	if err := json.Unmarshal(raw, &docs); err != nil {
		c.log.Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, version, false
	}
	return docs, version, true
}

// SetListAsync caches the product list in the background under version,
// which must be the version returned by the GetList call that preceded the
// storage read. A list read before an Invalidate lands under a retired key.
func (c *ProductCache) SetListAsync(version int64, docs []database.Document) {
	if !c.Enabled() || version <= 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := c.set(ctx, listKey(version), docs); err != nil {
			c.log.Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate drops every cached product list by bumping the version.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	v, err := c.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	c.log.Debug("product cache invalidated", zap.Int64("version", v))
	return nil
}

func (c *ProductCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}

func (c *ProductCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.redis.Close()
}

func (c *ProductCache) set(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, key, b, c.ttl).Err()
}

// version returns the list cache version, initializing it to 1 when absent.
func (c *ProductCache) version(ctx context.Context) (int64, error) {
	v, err := c.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}
	if err := c.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
		return 0, err
	}
	return c.redis.Get(ctx, CacheVersionKey).Int64()
}

func listKey(version int64) string {
	return fmt.Sprintf("%s%d:all", ProductListCachePrefix, version)
}
