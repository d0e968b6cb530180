package order

import (
	"context"

	"github.com/loja/backend/internal/domain/order"
)

// Dispatcher delivers accepted orders to the actuator
type Dispatcher interface {
	Publish(ctx context.Context, o *order.Order) error
}

// DispatcherFunc adapts a function to Dispatcher
type DispatcherFunc func(ctx context.Context, o *order.Order) error

// Publish calls f
func (f DispatcherFunc) Publish(ctx context.Context, o *order.Order) error {
	return f(ctx, o)
}
