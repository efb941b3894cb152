package geocode

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// cacheGridMeters - шаг сетки, по которой округляются координаты
	cacheGridMeters = 100.0
	metersPerDegree = 111320.0
)

// Store - хранилище адресов по ключу ячейки
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// redisKV - команды Redis, которыми пользуется кеш; *redis.Client их реализует
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisCache хранит адреса в Redis
type RedisCache struct {
	redisClient redisKV
}

// NewRedisCache создает кеш поверх клиента Redis
func NewRedisCache(client redisKV) *RedisCache {
	return &RedisCache{redisClient: client}
}

// Get возвращает адрес из кеша; промах не считается ошибкой
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get address from cache: %w", err)
	}
	return val, true, nil
}

// Set сохраняет адрес в Redis
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set address in cache: %w", err)
	}
	return nil
}

// roundToGrid округляет координату до ячейки ~100 м
func roundToGrid(coord float64) float64 {
	gridDegrees := cacheGridMeters / metersPerDegree
	return math.Round(coord/gridDegrees) * gridDegrees
}

// cacheKey строит ключ ячейки для координат
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("geocode:%.5f:%.5f", roundToGrid(lat), roundToGrid(lon))
}
