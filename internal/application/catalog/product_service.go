package catalog

import (
	"context"
	"fmt"

	"github.com/loja/backend/internal/domain/catalog"
	"github.com/loja/backend/internal/domain/shared/valueobject"
)

// ProductService exposes the read-only catalog to the HTTP layer
type ProductService struct {
	catalog catalog.ProductCatalog
}

// NewProductService creates a new ProductService
func NewProductService(c catalog.ProductCatalog) *ProductService {
	return &ProductService{catalog: c}
}

// List returns every product in catalog order
func (s *ProductService) List(ctx context.Context) []ProductResponse {
	return ToProductResponses(s.catalog.ListAll())
}

// GetByID returns one product, or catalog.ErrProductNotFound
func (s *ProductService) GetByID(ctx context.Context, id string) (*ProductResponse, error) {
	p, err := s.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// BuildCatalog creates the catalog from configured products, or the default boxes when
// specs is empty. Prices are parsed as decimals in currency.
func BuildCatalog(specs []ProductSpec, currency string) (*catalog.Catalog, error) {
	if len(specs) == 0 {
		return catalog.NewDefaultCatalog(), nil
	}
	if currency == "" {
		currency = string(valueobject.DefaultCurrency)
	}

	products := make([]*catalog.Product, 0, len(specs))
	for _, spec := range specs {
		price, err := valueobject.NewMoneyFromString(spec.Price, valueobject.Currency(currency))
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", spec.ID, err)
		}
		p, err := catalog.NewProduct(spec.ID, spec.Name, spec.Color, price, spec.Position)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", spec.ID, err)
		}
		products = append(products, p)
	}
	return catalog.NewCatalog(products...)
}
