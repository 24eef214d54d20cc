package repositories

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// LockRepositoryInterface - короткоживущие блокировки по ключу.
type LockRepositoryInterface interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisLockRepository - блокировки на SETNX, общие для нескольких экземпляров сервиса.
type RedisLockRepository struct {
	client *redis.Client
}

func NewRedisLockRepository(client *redis.Client) LockRepositoryInterface {
	return &RedisLockRepository{client: client}
}

// Acquire возвращает false, если ключ уже занят.
func (r *RedisLockRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, 1, ttl).Result()
}

func (r *RedisLockRepository) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
