package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "supplier-hub/pkg/errors"
	"supplier-hub/pkg/wire"
)

// Collection - удаленная коллекция в памяти процесса с тем же контрактом,
// что и коллекции в Postgres: новые записи первыми, удаление отсутствующего
// id - ошибка, ошибки чтения и записи типизированы. Update, как и UPDATE
// в Postgres, не трогает created_at и пустые sparse-поля.
type Collection[E any] struct {
	mu    sync.Mutex
	name  string
	table *wire.Table[E]
	items []E

	id      func(e *E) *string
	stamp   func(e *E, created bool, at time.Time)
	filters map[string]func(e E) any
	now     func() time.Time

	// ReadErr и WriteErr имитируют недоступность хранилища.
	ReadErr  error
	WriteErr error
}

func newCollection[E any](table *wire.Table[E], now func() time.Time, id func(e *E) *string, stamp func(e *E, created bool, at time.Time), filters map[string]func(e E) any) *Collection[E] {
	if now == nil {
		now = time.Now
	}
	return &Collection[E]{name: table.Name, table: table, now: now, id: id, stamp: stamp, filters: filters}
}

func (c *Collection[E]) ListAll(context.Context) ([]E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ReadErr != nil {
		return nil, apperrors.NewReadError(c.name, "listAll", c.ReadErr)
	}
	return append([]E{}, c.items...), nil
}

func (c *Collection[E]) ListByField(_ context.Context, field string, value any) ([]E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	get, ok := c.filters[field]
	if !ok {
		return nil, apperrors.NewValidationError(field, "фильтр по полю %q не поддерживается", field)
	}
	if c.ReadErr != nil {
		return nil, apperrors.NewReadError(c.name, "listByField", c.ReadErr)
	}
	out := []E{}
	for _, it := range c.items {
		if get(it) == value {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *Collection[E]) GetByID(_ context.Context, id string) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero E
	if c.ReadErr != nil {
		return zero, apperrors.NewReadError(c.name, "getById", c.ReadErr)
	}
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], nil
	}
	return zero, apperrors.NewNotFoundError(c.name, id)
}

func (c *Collection[E]) Create(_ context.Context, e E) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insert(e)
}

func (c *Collection[E]) insert(e E) (E, error) {
	var zero E
	if c.WriteErr != nil {
		return zero, apperrors.NewWriteError(c.name, "insert", c.WriteErr)
	}
	*c.id(&e) = uuid.NewString()
	c.stamp(&e, true, c.now())
	c.items = append([]E{e}, c.items...)
	return e, nil
}

func (c *Collection[E]) Update(_ context.Context, id string, e E) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero E
	if c.WriteErr != nil {
		return zero, apperrors.NewWriteError(c.name, "update", c.WriteErr)
	}
	i := c.indexOf(id)
	if i < 0 {
		return zero, apperrors.NewNotFoundError(c.name, id)
	}
	merged := c.items[i]
	c.table.Merge(&merged, &e)
	c.stamp(&merged, false, c.now())
	c.items[i] = merged
	return merged, nil
}

func (c *Collection[E]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.WriteErr != nil {
		return apperrors.NewWriteError(c.name, "delete", c.WriteErr)
	}
	i := c.indexOf(id)
	if i < 0 {
		return apperrors.NewNotFoundError(c.name, id)
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return nil
}

func (c *Collection[E]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[E]) indexOf(id string) int {
	for i := range c.items {
		if *c.id(&c.items[i]) == id {
			return i
		}
	}
	return -1
}
