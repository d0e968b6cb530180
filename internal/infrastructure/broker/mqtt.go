package broker

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/loja/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// disconnectQuiesce is how long Close lets in-flight publishes finish, in milliseconds
const disconnectQuiesce uint = 250

// MQTTClient publishes over MQTT. The underlying connection reconnects on its own
// and publishes fail fast with ErrNotConnected while it is down.
type MQTTClient struct {
	client         mqtt.Client
	qos            byte
	retained       bool
	publishTimeout time.Duration
	logger         *zap.Logger
}

var _ Client = (*MQTTClient)(nil)

// NewMQTTClient connects to cfg.URL. If the broker cannot be reached within
// cfg.ConnectTimeout the client is still returned: it keeps retrying in the background
// and the service runs degraded until the connection comes up.
func NewMQTTClient(cfg config.BrokerConfig, logger *zap.Logger) *MQTTClient {
	logger = logger.Named("broker").With(zap.String("driver", DriverMQTT), zap.String("url", cfg.URL))

	opts := NewMQTTClientOptions(cfg)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("Connected to MQTT broker")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	})
	opts.SetReconnectingHandler(func(mqtt.Client, *mqtt.ClientOptions) {
		logger.Info("Reconnecting to MQTT broker")
	})

	c := NewMQTTClientWithClient(mqtt.NewClient(opts), cfg, logger)
	c.connect(cfg.ConnectTimeout)
	return c
}

// NewMQTTClientWithClient wraps an existing MQTT client without connecting it
func NewMQTTClientWithClient(client mqtt.Client, cfg config.BrokerConfig, logger *zap.Logger) *MQTTClient {
	return &MQTTClient{
		client:         client,
		qos:            byte(cfg.QoS),
		retained:       cfg.Retained,
		publishTimeout: cfg.PublishTimeout,
		logger:         logger,
	}
}

// NewMQTTClientOptions maps the broker configuration onto MQTT client options
func NewMQTTClientOptions(cfg config.BrokerConfig) *mqtt.ClientOptions {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "loja-" + uuid.NewString()[:8]
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOrderMatters(false)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.KeepAlive > 0 {
		opts.SetKeepAlive(cfg.KeepAlive)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.ConnectRetryInterval > 0 {
		opts.SetConnectRetryInterval(cfg.ConnectRetryInterval)
		opts.SetMaxReconnectInterval(cfg.ConnectRetryInterval * 6)
	}
	return opts
}

func (c *MQTTClient) connect(timeout time.Duration) {
	token := c.client.Connect()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if !token.WaitTimeout(timeout) {
		c.logger.Warn("MQTT broker not reachable yet, retrying in background",
			zap.Duration("connect_timeout", timeout))
		return
	}
	if err := token.Error(); err != nil {
		c.logger.Error("Failed to connect to MQTT broker", zap.Error(err))
	}
}

// Publish sends payload and waits for the broker acknowledgement required by the QoS.
// It gives up after the publish timeout or when ctx is done.
func (c *MQTTClient) Publish(ctx context.Context, topic string, payload []byte) error {
	if !c.client.IsConnectionOpen() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, c.qos, c.retained, payload)

	var timeout <-chan time.Time
	if c.publishTimeout > 0 {
		timer := time.NewTimer(c.publishTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish to %s: %w", topic, err)
		}
		return nil
	case <-timeout:
		return ErrPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsConnected reports whether the connection to the broker is open
func (c *MQTTClient) IsConnected() bool {
	return c.client.IsConnectionOpen()
}

// Driver returns DriverMQTT
func (c *MQTTClient) Driver() string {
	return DriverMQTT
}

// Close disconnects from the broker, letting in-flight work finish briefly
func (c *MQTTClient) Close(context.Context) error {
	c.client.Disconnect(disconnectQuiesce)
	c.logger.Info("Disconnected from MQTT broker")
	return nil
}
