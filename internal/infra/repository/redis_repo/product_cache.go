package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/PouyaFakhri/FitLand-BackEnd/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 快取未命中
var ErrCacheMiss = errors.New("cache miss")

/*
商品讀取快取
DB仍為唯一真相來源 商品異動時由service負責失效
*/
type ProductCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, prefix string, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *ProductCache) setPrefixKey(key string) string {
	var builder strings.Builder
	builder.Grow(len(r.prefix) + 9 + len(key))
	builder.WriteString(r.prefix)
	builder.WriteString(":product:")
	builder.WriteString(key)
	return builder.String()
}

func (r *ProductCache) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	data, err := r.client.Get(ctx, r.setPrefixKey(productID)).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductCache) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.setPrefixKey(product.ID), data, r.ttl).Err()
}

func (r *ProductCache) DeleteProduct(ctx context.Context, productID string) error {
	return r.client.Del(ctx, r.setPrefixKey(productID)).Err()
}
