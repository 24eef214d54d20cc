package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	cfg := New()

	assert.Equal(t, 7*24*time.Hour, cfg.Store.NonConformityGracePeriod)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.True(t, cfg.Postgres.MigrateOnStart)
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("NC_GRACE_PERIOD", "72h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATABASE_MIGRATE", "false")
	t.Setenv("REDIS_LOCK_TTL", "not-a-duration")

	cfg := New()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 72*time.Hour, cfg.Store.NonConformityGracePeriod)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.Postgres.MigrateOnStart)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
}
