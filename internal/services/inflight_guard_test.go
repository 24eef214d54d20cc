package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "supplier-hub/pkg/errors"
)

func TestMemoryGuard(t *testing.T) {
	g := NewMemoryGuard(time.Minute)
	ctx := context.Background()

	release, err := g.Acquire(ctx, "suppliers:1")
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "suppliers:1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	other, err := g.Acquire(ctx, "suppliers:2")
	require.NoError(t, err)
	other()

	release()
	release, err = g.Acquire(ctx, "suppliers:1")
	require.NoError(t, err)
	release()
}

func TestMemoryGuard_ExpiredLockIsTaken(t *testing.T) {
	g := NewMemoryGuard(time.Millisecond)
	ctx := context.Background()

	stale, err := g.Acquire(ctx, "k")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	g.ttl = time.Minute
	fresh, err := g.Acquire(ctx, "k")
	require.NoError(t, err)

	// освобождение протухшей блокировки не снимает новую
	stale()
	_, err = g.Acquire(ctx, "k")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	fresh()
}

func TestMemoryGuard_Concurrent(t *testing.T) {
	g := NewMemoryGuard(time.Minute)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.Acquire(context.Background(), "same"); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, granted)
}

type fakeLocks struct {
	held     map[string]bool
	err      error
	released []string
}

func (f *fakeLocks) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocks) Release(_ context.Context, key string) error {
	delete(f.held, key)
	f.released = append(f.released, key)
	return nil
}

func TestRedisGuard(t *testing.T) {
	locks := &fakeLocks{held: map[string]bool{}}
	g := NewRedisGuard(locks, time.Minute, zap.NewNop())
	ctx := context.Background()

	release, err := g.Acquire(ctx, "evaluations:7")
	require.NoError(t, err)
	assert.True(t, locks.held["inflight:evaluations:7"])

	_, err = g.Acquire(ctx, "evaluations:7")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	release()
	assert.Equal(t, []string{"inflight:evaluations:7"}, locks.released)

	locks.err = errors.New("redis down")
	_, err = g.Acquire(ctx, "evaluations:8")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
}
