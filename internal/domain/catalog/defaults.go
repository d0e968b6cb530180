package catalog

import "github.com/loja/backend/internal/domain/shared/valueobject"

// DefaultProducts returns the boxes sold by the demonstration storefront
func DefaultProducts() []*Product {
	price := valueobject.MustMoneyBRL("25.00")
	return []*Product{
		{ID: "caixa-vermelha", Name: "Caixa Vermelha", Color: "#FF0000", Price: price, Position: 1},
		{ID: "caixa-azul", Name: "Caixa Azul", Color: "#0000FF", Price: price, Position: 2},
		{ID: "caixa-verde", Name: "Caixa Verde", Color: "#00FF00", Price: price, Position: 3},
		{ID: "caixa-amarela", Name: "Caixa Amarela", Color: "#FFFF00", Price: price, Position: 4},
	}
}

// NewDefaultCatalog builds the catalog from DefaultProducts
func NewDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultProducts()...)
	if err != nil {
		panic("default catalog is invalid: " + err.Error())
	}
	return c
}
