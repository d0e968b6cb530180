// Package broker provides the publish side of the message broker connection
// shared by the whole process.
package broker

import (
	"context"
	"errors"
)

// Drivers accepted by NewClient
const (
	DriverMQTT  = "mqtt"
	DriverRedis = "redis"
	DriverNone  = "none"
)

var (
	// ErrNotConnected is returned when publishing while the connection is down
	ErrNotConnected = errors.New("broker: not connected")
	// ErrPublishTimeout is returned when the broker does not acknowledge a publish in time
	ErrPublishTimeout = errors.New("broker: publish timed out")
	// ErrBrokerDisabled is returned by the client used when no broker is configured
	ErrBrokerDisabled = errors.New("broker: disabled")
	// ErrUnknownDriver is returned by NewClient for unsupported drivers
	ErrUnknownDriver = errors.New("broker: unknown driver")
)

// Client publishes payloads to topics on a long-lived broker connection.
// Implementations are safe for concurrent use.
type Client interface {
	// Publish sends payload to topic. It does not retry on failure.
	Publish(ctx context.Context, topic string, payload []byte) error
	// IsConnected reports whether the connection is currently usable
	IsConnected() bool
	// Driver names the transport, e.g. "mqtt"
	Driver() string
	// Close releases the connection
	Close(ctx context.Context) error
}
