package listeners

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"supplier-hub/internal/events"
	"supplier-hub/pkg/eventbus"
)

type recordingProducer struct {
	mu     sync.Mutex
	keys   []string
	values [][]byte
}

func (p *recordingProducer) Produce(_ context.Context, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, string(key))
	p.values = append(p.values, value)
	return nil
}

func (p *recordingProducer) Close() {}

type otherEvent struct{}

func (otherEvent) Name() string { return "other" }

func TestChangeFeedListener_ForwardsChangeEvents(t *testing.T) {
	producer := &recordingProducer{}
	bus := eventbus.New(zap.NewNop())
	NewChangeFeedListener(producer, zap.NewNop()).Register(bus)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	bus.Publish(context.Background(), events.ChangeEvent{Entity: "supplier", Action: events.ActionCreated, ID: "42", At: at})
	bus.Publish(context.Background(), otherEvent{})
	bus.Wait()

	require.Len(t, producer.keys, 1)
	assert.Equal(t, "supplier:42", producer.keys[0])

	var got events.ChangeEvent
	require.NoError(t, json.Unmarshal(producer.values[0], &got))
	assert.Equal(t, "supplier.created", got.Name())
	assert.True(t, at.Equal(got.At))
}
