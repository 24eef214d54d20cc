package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"supplier-hub/internal/repositories"
	apperrors "supplier-hub/pkg/errors"
)

// InFlightGuard допускает не более одной незавершенной мутации на запись.
// Второй вызов с тем же ключом получает apperrors.ErrConflict.
type InFlightGuard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type noGuard struct{}

func (noGuard) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

// MemoryGuard - блокировки внутри одного процесса. TTL страхует от
// навсегда захваченного ключа, если release так и не был вызван.
type MemoryGuard struct {
	locks sync.Map
	ttl   time.Duration
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{ttl: ttl}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	now := time.Now()
	expiry := now.Add(g.ttl)

	for {
		prev, loaded := g.locks.LoadOrStore(key, expiry)
		if !loaded {
			break
		}
		if now.Before(prev.(time.Time)) {
			return nil, fmt.Errorf("%s: %w", key, apperrors.ErrConflict)
		}
		// протухшая блокировка: забираем ее, только если никто не успел раньше
		if g.locks.CompareAndSwap(key, prev, expiry) {
			break
		}
	}

	return func() { g.locks.CompareAndDelete(key, expiry) }, nil
}

// Cleanup периодически удаляет протухшие ключи.
func (g *MemoryGuard) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			g.locks.Range(func(key, value interface{}) bool {
				if now.After(value.(time.Time)) {
					g.locks.CompareAndDelete(key, value)
				}
				return true
			})
		}
	}
}

// RedisGuard - то же для нескольких экземпляров сервиса.
type RedisGuard struct {
	locks  repositories.LockRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisGuard(locks repositories.LockRepositoryInterface, ttl time.Duration, logger *zap.Logger) *RedisGuard {
	return &RedisGuard{locks: locks, ttl: ttl, logger: logger}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := "inflight:" + key
	ok, err := g.locks.Acquire(ctx, redisKey, g.ttl)
	if err != nil {
		return nil, fmt.Errorf("не удалось захватить блокировку %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, apperrors.ErrConflict)
	}

	return func() {
		// контекст вызывающего может быть уже отменен
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.locks.Release(releaseCtx, redisKey); err != nil {
			g.logger.Warn("не удалось снять блокировку", zap.String("key", redisKey), zap.Error(err))
		}
	}, nil
}
