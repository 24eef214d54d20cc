package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLockRepository(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisLockRepository(client)
	ctx := context.Background()
	ttl := 30 * time.Second

	mock.ExpectSetNX("inflight:suppliers:1", 1, ttl).SetVal(true)
	mock.ExpectSetNX("inflight:suppliers:1", 1, ttl).SetVal(false)
	mock.ExpectDel("inflight:suppliers:1").SetVal(1)

	ok, err := repo.Acquire(ctx, "inflight:suppliers:1", ttl)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Acquire(ctx, "inflight:suppliers:1", ttl)
	require.NoError(t, err)
	assert.False(t, ok, "повторный захват должен быть отклонен")

	require.NoError(t, repo.Release(ctx, "inflight:suppliers:1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLockRepository_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisLockRepository(client)

	mock.ExpectSetNX("k", 1, time.Second).SetErr(errors.New("redis down"))

	_, err := repo.Acquire(context.Background(), "k", time.Second)
	assert.EqualError(t, err, "redis down")
}
