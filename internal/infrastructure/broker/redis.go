package broker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/loja/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient publishes with Redis PUBLISH, for deployments that run the actuator
// bridge against Redis pub/sub instead of an MQTT broker.
type RedisClient struct {
	client         *redis.Client
	publishTimeout time.Duration
	connected      atomic.Bool
	logger         *zap.Logger
}

var _ Client = (*RedisClient)(nil)

// NewRedisClient creates a Redis client and pings it. A failed ping is logged and
// the client is returned anyway: go-redis redials on the next command.
// Commands are not retried, so a publish costs at most one publish_timeout.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, brokerCfg config.BrokerConfig, logger *zap.Logger) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  brokerCfg.ConnectTimeout,
		WriteTimeout: brokerCfg.PublishTimeout,
		MaxRetries:   -1,
	})

	c := NewRedisClientWithClient(client, brokerCfg.PublishTimeout, logger)
	c.ping(ctx, brokerCfg.ConnectTimeout)
	return c
}

// NewRedisClientWithClient wraps an existing Redis client.
// A positive publishTimeout bounds every Publish.
func NewRedisClientWithClient(client *redis.Client, publishTimeout time.Duration, logger *zap.Logger) *RedisClient {
	return &RedisClient{
		client:         client,
		publishTimeout: publishTimeout,
		logger:         logger.Named("broker").With(zap.String("driver", DriverRedis)),
	}
}

func (c *RedisClient) ping(ctx context.Context, timeout time.Duration) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.client.Ping(pingCtx).Err(); err != nil {
		c.logger.Warn("Redis not reachable yet, publishes will fail until it is", zap.Error(err))
		return
	}
	c.connected.Store(true)
	c.logger.Info("Connected to Redis", zap.String("addr", c.client.Options().Addr))
}

// Publish sends payload to the channel named topic
func (c *RedisClient) Publish(ctx context.Context, topic string, payload []byte) error {
	if c.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.publishTimeout)
		defer cancel()
	}

	if err := c.client.Publish(ctx, topic, payload).Err(); err != nil {
		c.connected.Store(false)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("redis publish to %s: %w: %w", topic, ErrPublishTimeout, err)
		}
		return fmt.Errorf("redis publish to %s: %w", topic, err)
	}
	c.connected.Store(true)
	return nil
}

// IsConnected reports the outcome of the last ping or publish
func (c *RedisClient) IsConnected() bool {
	return c.connected.Load()
}

// Driver returns DriverRedis
func (c *RedisClient) Driver() string {
	return DriverRedis
}

// Close closes the connection pool
func (c *RedisClient) Close(context.Context) error {
	c.connected.Store(false)
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}
