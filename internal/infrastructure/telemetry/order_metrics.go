package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Dispatch results
const (
	DispatchResultSuccess = "success"
	DispatchResultFailure = "failure"
)

// Order rejection reasons
const (
	RejectReasonInvalid  = "invalid"
	RejectReasonNotFound = "not_found"
)

// OrderMetrics counts placed and rejected orders and times dispatch attempts.
// A nil *OrderMetrics is valid and records nothing.
type OrderMetrics struct {
	placedTotal      *Counter
	rejectedTotal    *Counter
	dispatchTotal    *Counter
	dispatchDuration *Histogram
}

// NewOrderMetrics creates the order instruments on meter
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		om  OrderMetrics
		err error
	)
	om.placedTotal, err = NewCounter(meter,
		"loja_order_placed_total",
		"Total number of accepted orders",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	om.rejectedTotal, err = NewCounter(meter,
		"loja_order_rejected_total",
		"Total number of rejected order requests",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	om.dispatchTotal, err = NewCounter(meter,
		"loja_dispatch_total",
		"Total number of dispatch attempts to the actuator topic",
		"{messages}",
	)
	if err != nil {
		return nil, err
	}

	om.dispatchDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "loja_dispatch_duration_seconds",
		Description: "Time spent publishing a dispatch message",
		Unit:        "s",
		Boundaries:  DispatchDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &om, nil
}

// RecordOrderPlaced counts an accepted order for productID
func (om *OrderMetrics) RecordOrderPlaced(ctx context.Context, productID string) {
	if om == nil {
		return
	}
	om.placedTotal.Inc(ctx, AttrProductID.String(productID))
}

// RecordOrderRejected counts a rejected request, reason is RejectReasonInvalid or RejectReasonNotFound
func (om *OrderMetrics) RecordOrderRejected(ctx context.Context, reason string) {
	if om == nil {
		return
	}
	om.rejectedTotal.Inc(ctx, AttrReason.String(reason))
}

// RecordDispatch counts a dispatch attempt and records how long it took
func (om *OrderMetrics) RecordDispatch(ctx context.Context, d time.Duration, err error) {
	if om == nil {
		return
	}
	result := DispatchResultSuccess
	if err != nil {
		result = DispatchResultFailure
	}
	om.dispatchTotal.Inc(ctx, AttrResult.String(result))
	om.dispatchDuration.RecordDuration(ctx, d, AttrResult.String(result))
}
