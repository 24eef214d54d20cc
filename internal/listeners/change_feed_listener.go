package listeners

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"supplier-hub/internal/events"
	"supplier-hub/pkg/eventbus"
	"supplier-hub/pkg/kafka"
)

// ChangeFeedListener пересылает изменения стора в Kafka.
type ChangeFeedListener struct {
	producer kafka.Producer
	logger   *zap.Logger
}

func NewChangeFeedListener(producer kafka.Producer, logger *zap.Logger) *ChangeFeedListener {
	return &ChangeFeedListener{producer: producer, logger: logger}
}

func (l *ChangeFeedListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.Wildcard, l.handle)
	l.logger.Info("ChangeFeedListener подписан на все события стора")
}

func (l *ChangeFeedListener) handle(ctx context.Context, event eventbus.Event) error {
	change, ok := event.(events.ChangeEvent)
	if !ok {
		return nil
	}

	value, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать событие %s: %w", change.Name(), err)
	}

	key := []byte(change.Entity + ":" + change.ID)
	if err := l.producer.Produce(ctx, key, value); err != nil {
		return fmt.Errorf("не удалось отправить событие %s в kafka: %w", change.Name(), err)
	}

	l.logger.Debug("событие отправлено в kafka",
		zap.String("event", change.Name()),
		zap.String("id", change.ID))
	return nil
}
