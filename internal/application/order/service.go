package order

import (
	"context"
	"errors"
	"strings"
	"time"

	catalogapp "github.com/loja/backend/internal/application/catalog"
	"github.com/loja/backend/internal/domain/catalog"
	"github.com/loja/backend/internal/domain/order"
	"github.com/loja/backend/internal/infrastructure/logger"
	"github.com/loja/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService places storefront orders: it validates the request, mints an order,
// hands it to the dispatcher and composes the customer confirmation.
type OrderService struct {
	catalog    catalog.ProductCatalog
	dispatcher Dispatcher
	composer   *ConfirmationComposer
	ids        order.IDGenerator
	clock      func() time.Time
	metrics    *telemetry.OrderMetrics
	logger     *zap.Logger
}

// Option configures an OrderService
type Option func(*OrderService)

// WithClock overrides the time source used for order timestamps
func WithClock(clock func() time.Time) Option {
	return func(s *OrderService) {
		s.clock = clock
	}
}

// WithIDGenerator overrides how order identifiers are minted
func WithIDGenerator(ids order.IDGenerator) Option {
	return func(s *OrderService) {
		s.ids = ids
	}
}

// WithMetrics records placed and rejected orders
func WithMetrics(m *telemetry.OrderMetrics) Option {
	return func(s *OrderService) {
		s.metrics = m
	}
}

// WithLogger sets the fallback logger used when the request context carries none
func WithLogger(l *zap.Logger) Option {
	return func(s *OrderService) {
		s.logger = l
	}
}

// NewOrderService creates a new OrderService
func NewOrderService(c catalog.ProductCatalog, dispatcher Dispatcher, composer *ConfirmationComposer, opts ...Option) *OrderService {
	s := &OrderService{
		catalog:    c,
		dispatcher: dispatcher,
		composer:   composer,
		ids:        order.NewUUIDGenerator(),
		clock:      time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.composer == nil {
		s.composer = NewConfirmationComposer("", "")
	}
	return s
}

// PlaceOrder accepts an order for an existing product.
//
// Incomplete input returns order.ErrIncompleteData and an unknown product returns
// catalog.ErrProductNotFound; in both cases no identifier is minted and nothing is
// dispatched. A dispatch failure does not fail the order.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderOutput, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, input.ProductID),
	)
	defer span.End()

	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		s.metrics.RecordOrderRejected(ctx, telemetry.RejectReasonInvalid)
		return nil, order.ErrIncompleteData
	}
	customer, err := order.NewCustomerInfo(input.CustomerName, input.CustomerPhone)
	if err != nil {
		s.metrics.RecordOrderRejected(ctx, telemetry.RejectReasonInvalid)
		return nil, err
	}

	product, err := s.catalog.Lookup(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			s.metrics.RecordOrderRejected(ctx, telemetry.RejectReasonNotFound)
		}
		return nil, err
	}

	o, err := order.NewOrder(s.ids.Mint(), product, customer, s.clock())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	ctx = logger.WithOrderID(ctx, o.ID)
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, o.ID)

	dispatched := true
	if s.dispatcher == nil {
		dispatched = false
	} else if err := s.dispatcher.Publish(ctx, o); err != nil {
		// the order stands even if the actuator never hears about it
		dispatched = false
		telemetry.AddEvent(span, "dispatch_failed", "error", err.Error())
	}

	s.metrics.RecordOrderPlaced(ctx, product.ID)
	s.log(ctx).Info("Order placed",
		zap.String("product_id", product.ID),
		zap.Bool("dispatched", dispatched),
	)

	confirmation := s.composer.Compose(o)
	return &PlaceOrderOutput{
		OrderID:    o.ID,
		Link:       confirmation.Link,
		Product:    catalogapp.ToProductResponse(product),
		Dispatched: dispatched,
	}, nil
}

func (s *OrderService) log(ctx context.Context) *logger.ContextLogger {
	if _, ok := ctx.Value(logger.LoggerKey).(*zap.Logger); ok {
		return logger.L(ctx)
	}
	return logger.WithLogger(ctx, s.logger)
}
