package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Wildcard - подписка на все события.
const Wildcard = "*"

type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	inflight  sync.WaitGroup
	timeout   time.Duration
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   time.Minute,
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish не блокирует: каждый слушатель работает в своей горутине
// с собственным таймаутом, ошибки только логируются.
func (b *Bus) Publish(ctx context.Context, event Event) {
	eventName := event.Name()

	b.mu.RLock()
	targets := make([]Listener, 0, len(b.listeners[eventName])+len(b.listeners[Wildcard]))
	targets = append(targets, b.listeners[eventName]...)
	targets = append(targets, b.listeners[Wildcard]...)
	b.mu.RUnlock()

	for _, listener := range targets {
		b.inflight.Add(1)
		go func(l Listener) {
			defer b.inflight.Done()
			ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait дожидается завершения всех запущенных обработчиков.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
