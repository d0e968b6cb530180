package broker

import (
	"context"
	"testing"
	"time"

	"github.com/loja/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		cfg := &config.Config{Broker: config.BrokerConfig{Driver: "none"}}

		c, err := NewClient(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, DriverNone, c.Driver())
		assert.False(t, c.IsConnected())
	})

	t.Run("redis with unreachable server", func(t *testing.T) {
		cfg := &config.Config{
			Broker: config.BrokerConfig{Driver: "redis", ConnectTimeout: 50 * time.Millisecond},
			Redis:  config.RedisConfig{Host: "127.0.0.1", Port: 1},
		}

		c, err := NewClient(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close(ctx) })
		assert.Equal(t, DriverRedis, c.Driver())
		assert.False(t, c.IsConnected())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &config.Config{Broker: config.BrokerConfig{Driver: "kafka"}}

		_, err := NewClient(ctx, cfg, zap.NewNop())
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}

func TestDisabledClient(t *testing.T) {
	c := NewDisabledClient()

	assert.ErrorIs(t, c.Publish(context.Background(), "loja/pedido", []byte("{}")), ErrBrokerDisabled)
	assert.False(t, c.IsConnected())
	assert.NoError(t, c.Close(context.Background()))
}
