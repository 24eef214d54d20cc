package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent string

func (e testEvent) Name() string { return string(e) }

func TestBus_PublishRoutesByName(t *testing.T) {
	bus := New(zap.NewNop())

	var mu sync.Mutex
	var got []string
	record := func(prefix string) Listener {
		return func(_ context.Context, e Event) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, prefix+":"+e.Name())
			return nil
		}
	}

	bus.Subscribe("supplier.created", record("direct"))
	bus.Subscribe(Wildcard, record("all"))

	bus.Publish(context.Background(), testEvent("supplier.created"))
	bus.Publish(context.Background(), testEvent("supplier.deleted"))
	bus.Wait()

	assert.ElementsMatch(t, []string{
		"direct:supplier.created",
		"all:supplier.created",
		"all:supplier.deleted",
	}, got)
}

func TestBus_ListenerErrorDoesNotStopOthers(t *testing.T) {
	bus := New(zap.NewNop())
	called := make(chan struct{}, 1)

	bus.Subscribe("x", func(context.Context, Event) error { return errors.New("boom") })
	bus.Subscribe("x", func(context.Context, Event) error {
		called <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), testEvent("x"))
	bus.Wait()

	assert.Len(t, called, 1)
}

func TestBus_CancelledPublisherContext(t *testing.T) {
	bus := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var listenerErr error
	bus.Subscribe("x", func(ctx context.Context, _ Event) error {
		listenerErr = ctx.Err()
		return nil
	})

	bus.Publish(ctx, testEvent("x"))
	bus.Wait()

	assert.NoError(t, listenerErr, "отмена вызывающего не должна прерывать обработчик")
}
