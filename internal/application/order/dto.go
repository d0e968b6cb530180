package order

import catalogapp "github.com/loja/backend/internal/application/catalog"

// PlaceOrderInput is an order request as received from the storefront
type PlaceOrderInput struct {
	ProductID     string
	CustomerName  string
	CustomerPhone string
}

// PlaceOrderOutput is the result of an accepted order
type PlaceOrderOutput struct {
	OrderID string
	Link    string
	Product catalogapp.ProductResponse
	// Dispatched is false when the actuator message could not be published.
	// The order is still accepted.
	Dispatched bool
}
