// Package dispatch sends accepted orders to the actuator over the broker.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/loja/backend/internal/domain/order"
	"github.com/loja/backend/internal/infrastructure/broker"
	"github.com/loja/backend/internal/infrastructure/logger"
	"github.com/loja/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrNoClient is the cause reported when the publisher has no broker client
var ErrNoClient = errors.New("dispatch: no broker client")

// Error reports a dispatch message that did not reach the broker
type Error struct {
	OrderID string
	Topic   string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("dispatch order %s to %s: %v", e.OrderID, e.Topic, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Publisher turns orders into dispatch messages and publishes them on a single topic.
// Delivery is at most once: a failed publish is reported and never retried.
type Publisher struct {
	client  broker.Client
	topic   string
	logger  *zap.Logger
	metrics *telemetry.OrderMetrics
}

// Option configures a Publisher
type Option func(*Publisher)

// WithMetrics records dispatch counts and durations
func WithMetrics(m *telemetry.OrderMetrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a Publisher. An empty topic means order.DefaultDispatchTopic.
func NewPublisher(client broker.Client, topic string, log *zap.Logger, opts ...Option) *Publisher {
	if topic == "" {
		topic = order.DefaultDispatchTopic
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Publisher{
		client: client,
		topic:  topic,
		logger: log.Named("dispatch"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Topic returns the topic messages are published on
func (p *Publisher) Topic() string {
	return p.topic
}

// Publish sends the dispatch message for o. Failures are logged and returned as *Error.
func (p *Publisher) Publish(ctx context.Context, o *order.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "dispatch.publish",
		telemetry.WithSpanKind(trace.SpanKindProducer),
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, o.ID),
		telemetry.WithAttribute(telemetry.SpanAttrDispatchTopic, p.topic),
	)
	defer span.End()

	log := logger.WithLogger(ctx, p.logger).With(
		zap.String("order_id", o.ID),
		zap.String("topic", p.topic),
	)

	start := time.Now()
	err := p.publish(ctx, o)
	p.metrics.RecordDispatch(ctx, time.Since(start), err)

	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Failed to dispatch order", zap.Error(err))
		return &Error{OrderID: o.ID, Topic: p.topic, Err: err}
	}

	telemetry.SetOK(span)
	log.Info("Order dispatched",
		zap.String("product", o.Product.Name),
		zap.Int("position", o.Product.Position),
	)
	return nil
}

func (p *Publisher) publish(ctx context.Context, o *order.Order) error {
	if p.client == nil {
		return ErrNoClient
	}

	payload, err := json.Marshal(order.NewDispatchMessage(o))
	if err != nil {
		return fmt.Errorf("encode dispatch message: %w", err)
	}
	telemetry.SetAttributes(trace.SpanFromContext(ctx),
		telemetry.SpanAttrMessagingSystem, p.client.Driver(),
		telemetry.SpanAttrPayloadSize, len(payload),
	)

	return p.client.Publish(ctx, p.topic, payload)
}
