package order

import (
	"strings"
	"time"

	"github.com/loja/backend/internal/domain/catalog"
	"github.com/loja/backend/internal/domain/shared"
)

// Order is an accepted customer order. It lives only while its request is handled.
type Order struct {
	ID        string
	Product   *catalog.Product
	Customer  CustomerInfo
	CreatedAt time.Time
}

// NewOrder creates an order for a product that was already found in the catalog
func NewOrder(id string, product *catalog.Product, customer CustomerInfo, createdAt time.Time) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order id cannot be empty")
	}
	if product == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order must reference a product")
	}
	if customer.Name == "" || customer.Phone.IsZero() {
		return nil, ErrIncompleteData
	}

	return &Order{
		ID:        id,
		Product:   product,
		Customer:  customer,
		CreatedAt: createdAt,
	}, nil
}
