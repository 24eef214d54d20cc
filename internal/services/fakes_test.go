package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/repositories/memory"
	"supplier-hub/pkg/eventbus"
	apperrors "supplier-hub/pkg/errors"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type testRepos struct {
	*memory.Repositories
	// failAt - пакеты не короче failAt отклоняются целиком
	failAt int
}

func newFakeRepos() *testRepos {
	return &testRepos{Repositories: memory.New(func() time.Time { return testNow })}
}

type batchFailer struct {
	*memory.Suppliers
	repos *testRepos
}

func (b batchFailer) CreateBatch(ctx context.Context, batch []entities.Supplier) ([]entities.Supplier, error) {
	if b.repos.failAt > 0 && len(batch) >= b.repos.failAt {
		return nil, apperrors.NewWriteError("suppliers", "insert", errors.New("duplicate key"))
	}
	return b.Suppliers.CreateBatch(ctx, batch)
}

func (r *testRepos) store() StoreRepositories {
	return StoreRepositories{
		Suppliers:       batchFailer{Suppliers: r.Suppliers, repos: r},
		Evaluations:     r.Evaluations,
		NonConformities: r.NonConformities,
		Documents:       r.Documents,
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, e eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e.Name())
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type recordingObserver struct {
	mu    sync.Mutex
	ops   map[string]int
	fails map[string]int
	sizes map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{ops: map[string]int{}, fails: map[string]int{}, sizes: map[string]int{}}
}

func (o *recordingObserver) ObserveOp(op string, _ time.Time, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops[op]++
	if err != nil {
		o.fails[op]++
	}
}

func (o *recordingObserver) SetCacheSize(entity string, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sizes[entity] = n
}
