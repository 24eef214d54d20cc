package kafka

import (
	"context"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer - то, что нужно слушателю изменений от Kafka.
type Producer interface {
	Produce(ctx context.Context, key, value []byte) error
	Close()
}

type Config struct {
	Brokers  []string
	Topic    string
	ClientID string
}

type Client struct {
	topic  string
	client *kgo.Client
}

func New(cfg Config) (*Client, error) {
	kafkaClient, err := kgo.NewClient(options(cfg)...)
	if err != nil {
		return nil, err
	}
	return &Client{topic: cfg.Topic, client: kafkaClient}, nil
}

func options(cfg Config) []kgo.Opt {
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.AllowAutoTopicCreation(),
		kgo.RecordRetries(3),
		kgo.DialTimeout(5 * time.Second),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	return opts
}

// Produce отправляет запись синхронно; ключ определяет партицию.
func (k *Client) Produce(ctx context.Context, key, value []byte) error {
	record := &kgo.Record{
		Topic: k.topic,
		Key:   key,
		Value: value,
	}
	return k.client.ProduceSync(ctx, record).FirstErr()
}

func (k *Client) Close() {
	if k.client != nil {
		k.client.Close()
	}
}
