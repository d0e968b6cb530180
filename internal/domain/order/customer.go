package order

import (
	"strings"

	"github.com/loja/backend/internal/domain/shared"
	"github.com/loja/backend/internal/domain/shared/valueobject"
)

// ErrIncompleteData is returned when the product or customer fields are missing
var ErrIncompleteData = shared.NewDomainError(shared.CodeInvalidInput, "Dados incompletos")

// CustomerInfo identifies who placed an order. It is never persisted.
type CustomerInfo struct {
	Name  string
	Phone valueobject.Phone
}

// NewCustomerInfo validates and normalizes customer data.
// Blank names and phones without any digit are rejected as incomplete.
func NewCustomerInfo(name, phone string) (CustomerInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomerInfo{}, ErrIncompleteData
	}

	p, err := valueobject.NewPhone(phone)
	if err != nil {
		return CustomerInfo{}, ErrIncompleteData
	}

	return CustomerInfo{Name: name, Phone: p}, nil
}
