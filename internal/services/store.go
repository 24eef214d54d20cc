package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/events"
	"supplier-hub/internal/integrations"
	"supplier-hub/internal/repositories"
	"supplier-hub/pkg/eventbus"
	"supplier-hub/pkg/filestorage"
)

// StoreRepositories - удаленные коллекции, с которыми работает стор.
type StoreRepositories struct {
	Suppliers       repositories.SupplierRepositoryInterface
	Evaluations     repositories.EvaluationRepositoryInterface
	NonConformities repositories.NonConformityRepositoryInterface
	Documents       repositories.DocumentRepositoryInterface
}

// OpObserver получает длительность и результат каждой операции стора.
type OpObserver interface {
	ObserveOp(operation string, start time.Time, err error)
	SetCacheSize(entity string, n int)
}

type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// storeState никогда не изменяется на месте: каждая мутация собирает новые
// срезы и подменяет указатель под мьютексом.
type storeState struct {
	ready           bool
	suppliers       []entities.Supplier
	evaluations     []entities.Evaluation
	nonConformities []entities.NonConformity
	documents       []entities.Document
	columnMappings  map[string]string
}

type Store struct {
	repos StoreRepositories

	mu    sync.RWMutex
	state *storeState

	guard       InFlightGuard
	observer    OpObserver
	publisher   EventPublisher
	sheets      integrations.RegistryInterface
	files       filestorage.FileStorageInterface
	gracePeriod time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

type StoreOption func(*Store)

// WithInFlightGuard: nil оставляет стор без блокировок.
func WithInFlightGuard(g InFlightGuard) StoreOption {
	return func(s *Store) {
		if g != nil {
			s.guard = g
		}
	}
}

func WithObserver(o OpObserver) StoreOption { return func(s *Store) { s.observer = o } }

func WithPublisher(p EventPublisher) StoreOption { return func(s *Store) { s.publisher = p } }

func WithSheets(r integrations.RegistryInterface) StoreOption { return func(s *Store) { s.sheets = r } }

func WithFileStorage(f filestorage.FileStorageInterface) StoreOption {
	return func(s *Store) { s.files = f }
}

func WithGracePeriod(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.gracePeriod = d
		}
	}
}

func WithClock(now func() time.Time) StoreOption { return func(s *Store) { s.now = now } }

func NewStore(repos StoreRepositories, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		repos:       repos,
		state:       &storeState{columnMappings: map[string]string{}},
		guard:       noGuard{},
		gracePeriod: entities.NonConformityGracePeriod,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadInitialData читает все коллекции параллельно и подменяет кеш целиком,
// только когда все чтения завершились успешно.
func (s *Store) LoadInitialData(ctx context.Context) (err error) {
	defer s.observe("loadInitialData", time.Now(), &err)

	var (
		suppliers       []entities.Supplier
		evaluations     []entities.Evaluation
		nonConformities []entities.NonConformity
		documents       []entities.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		suppliers, err = s.repos.Suppliers.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		evaluations, err = s.repos.Evaluations.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		nonConformities, err = s.repos.NonConformities.ListAll(gctx)
		return err
	})
	if s.repos.Documents != nil {
		g.Go(func() (err error) {
			documents, err = s.repos.Documents.ListAll(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("не удалось загрузить данные стора", zap.Error(err))
		return err
	}

	s.mutate(func(st *storeState) {
		st.ready = true
		st.suppliers = orEmpty(suppliers)
		st.evaluations = orEmpty(evaluations)
		st.nonConformities = orEmpty(nonConformities)
		st.documents = orEmpty(documents)
	})

	s.logger.Info("данные стора загружены",
		zap.Int("suppliers", len(suppliers)),
		zap.Int("evaluations", len(evaluations)),
		zap.Int("nonConformities", len(nonConformities)),
		zap.Int("documents", len(documents)))
	s.publish(ctx, "store", events.ActionLoaded, "", nil)
	return nil
}

// Ready: false до первой успешной загрузки.
func (s *Store) Ready() bool {
	return s.snapshotState().ready
}

func (s *Store) snapshotState() *storeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// mutate применяет fn к копии состояния и атомарно подменяет его.
func (s *Store) mutate(fn func(st *storeState)) {
	s.mu.Lock()
	next := *s.state
	fn(&next)
	s.state = &next
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.SetCacheSize("suppliers", len(next.suppliers))
		s.observer.SetCacheSize("evaluations", len(next.evaluations))
		s.observer.SetCacheSize("non_conformities", len(next.nonConformities))
		s.observer.SetCacheSize("documents", len(next.documents))
	}
}

func (s *Store) observe(op string, start time.Time, err *error) {
	if s.observer != nil {
		s.observer.ObserveOp(op, start, *err)
	}
}

func (s *Store) publish(ctx context.Context, entity string, action events.Action, id string, payload any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, events.ChangeEvent{
		Entity:  entity,
		Action:  action,
		ID:      id,
		Payload: payload,
		At:      s.now(),
	})
}

// withGuard держит блокировку на запись с данным id, пока выполняется fn.
func (s *Store) withGuard(ctx context.Context, collection, id string, fn func() error) error {
	release, err := s.guard.Acquire(ctx, collection+":"+id)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func orEmpty[E any](items []E) []E {
	if items == nil {
		return []E{}
	}
	return items
}

// without возвращает новый срез без элементов, для которых drop == true.
func without[E any](items []E, drop func(E) bool) []E {
	out := make([]E, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

// replaceOrAppend заменяет элемент с тем же id или добавляет его в конец.
func replaceOrAppend[E any](items []E, item E, id func(E) string) []E {
	out := make([]E, len(items), len(items)+1)
	copy(out, items)
	for i := range out {
		if id(out[i]) == id(item) {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

func appendCopy[E any](items []E, more ...E) []E {
	out := make([]E, 0, len(items)+len(more))
	out = append(out, items...)
	return append(out, more...)
}
