package order

import "time"

// DefaultDispatchTopic is the topic the actuator subscribes to
const DefaultDispatchTopic = "loja/pedido"

// TimestampLayout renders UTC timestamps with millisecond precision, e.g. 2026-10-18T12:00:00.000Z
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DispatchMessage is the command sent to the actuator for an accepted order
type DispatchMessage struct {
	OrderID   string `json:"pedidoId"`
	Product   string `json:"produto"`
	Position  int    `json:"posicao"`
	Customer  string `json:"cliente"`
	Timestamp string `json:"timestamp"`
}

// NewDispatchMessage derives the actuator command from an order.
// The result depends only on the order, so the same order always yields the same message.
func NewDispatchMessage(o *Order) DispatchMessage {
	return DispatchMessage{
		OrderID:   o.ID,
		Product:   o.Product.Name,
		Position:  o.Product.Position,
		Customer:  o.Customer.Name,
		Timestamp: FormatTimestamp(o.CreatedAt),
	}
}

// FormatTimestamp formats t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
