package catalog

import (
	"fmt"

	"github.com/loja/backend/internal/domain/shared"
)

// ErrProductNotFound is returned by Lookup for unknown product identifiers
var ErrProductNotFound = shared.NewDomainError(shared.CodeNotFound, "Produto não encontrado")

// ProductCatalog is the read-only view of the products on sale
type ProductCatalog interface {
	// Lookup finds a product by its identifier
	Lookup(id string) (*Product, error)
	// ListAll returns every product in display order
	ListAll() []*Product
}

// Catalog is an immutable in-memory ProductCatalog.
// It has no mutators, so concurrent readers need no locking.
type Catalog struct {
	byID    map[string]*Product
	ordered []*Product
}

// NewCatalog builds a catalog keeping the given order for display
func NewCatalog(products ...*Product) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[string]*Product, len(products)),
		ordered: make([]*Product, 0, len(products)),
	}

	for _, p := range products {
		if p == nil {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Catalog cannot contain a nil product")
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Duplicate product id %q", p.ID))
		}
		c.byID[p.ID] = p
		c.ordered = append(c.ordered, p)
	}

	return c, nil
}

// Lookup finds a product by its identifier
func (c *Catalog) Lookup(id string) (*Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// ListAll returns a copy of the products in display order
func (c *Catalog) ListAll() []*Product {
	out := make([]*Product, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.ordered)
}
