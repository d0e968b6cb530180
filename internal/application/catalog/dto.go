package catalog

import "github.com/loja/backend/internal/domain/catalog"

// ProductResponse is the public view of a product
type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"nome"`
	Color    string  `json:"cor"`
	Price    float64 `json:"preco"`
	Position int     `json:"posicao"`
}

// ToProductResponse converts a domain product to its public view.
// The price is rounded to two places before conversion to a JSON number.
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Color:    p.Color,
		Price:    p.Price.Float64(),
		Position: p.Position,
	}
}

// ToProductResponses converts a list of products, keeping their order
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

// ProductSpec describes a catalog entry supplied by configuration
type ProductSpec struct {
	ID       string
	Name     string
	Color    string
	Price    string
	Position int
}
