package catalog

import (
	"strings"

	"github.com/loja/backend/internal/domain/shared"
	"github.com/loja/backend/internal/domain/shared/valueobject"
)

// Product is a physical good the storefront sells.
// Products are created once at startup and never mutated afterwards.
type Product struct {
	ID       string
	Name     string
	Color    string // display color, e.g. "#FF0000"
	Price    valueobject.Money
	Position int // actuator slot that releases this product
}

// NewProduct creates a validated product
func NewProduct(id, name, color string, price valueobject.Money, position int) (*Product, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)

	if id == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product id cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot be empty")
	}
	if price.Currency() == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product price must have a currency")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product price cannot be negative")
	}
	if position <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product dispatch position must be positive")
	}

	return &Product{
		ID:       id,
		Name:     name,
		Color:    strings.TrimSpace(color),
		Price:    price,
		Position: position,
	}, nil
}
