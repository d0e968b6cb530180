package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/loja/backend/internal/domain/catalog"
	"github.com/loja/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_List(t *testing.T) {
	svc := NewProductService(catalog.NewDefaultCatalog())

	products := svc.List(context.Background())

	require.Len(t, products, 4)
	assert.Equal(t, ProductResponse{
		ID:       "caixa-vermelha",
		Name:     "Caixa Vermelha",
		Color:    "#FF0000",
		Price:    25.00,
		Position: 1,
	}, products[0])
	ids := []string{products[0].ID, products[1].ID, products[2].ID, products[3].ID}
	assert.Equal(t, []string{"caixa-vermelha", "caixa-azul", "caixa-verde", "caixa-amarela"}, ids)
}

func TestProductService_ListJSON(t *testing.T) {
	svc := NewProductService(catalog.NewDefaultCatalog())

	data, err := json.Marshal(svc.List(context.Background())[1])
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"caixa-azul","nome":"Caixa Azul","cor":"#0000FF","preco":25,"posicao":2}`, string(data))
}

func TestProductService_GetByID(t *testing.T) {
	svc := NewProductService(catalog.NewDefaultCatalog())

	t.Run("found", func(t *testing.T) {
		p, err := svc.GetByID(context.Background(), "caixa-amarela")
		require.NoError(t, err)
		assert.Equal(t, "#FFFF00", p.Color)
		assert.Equal(t, 4, p.Position)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), "caixa-roxa")
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBuildCatalog(t *testing.T) {
	t.Run("defaults when nothing configured", func(t *testing.T) {
		c, err := BuildCatalog(nil, "")
		require.NoError(t, err)
		assert.Equal(t, 4, c.Len())
	})

	t.Run("configured products", func(t *testing.T) {
		c, err := BuildCatalog([]ProductSpec{
			{ID: "caixa-rosa", Name: "Caixa Rosa", Color: "#FFC0CB", Price: "30.5", Position: 5},
		}, "BRL")
		require.NoError(t, err)

		p, err := c.Lookup("caixa-rosa")
		require.NoError(t, err)
		assert.Equal(t, "30.50", p.Price.StringFixed())
		assert.Equal(t, 5, p.Position)
	})

	t.Run("invalid price", func(t *testing.T) {
		_, err := BuildCatalog([]ProductSpec{{ID: "x", Name: "X", Price: "abc", Position: 1}}, "BRL")
		assert.Error(t, err)
	})

	t.Run("invalid position", func(t *testing.T) {
		_, err := BuildCatalog([]ProductSpec{{ID: "x", Name: "X", Price: "1", Position: 0}}, "BRL")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := BuildCatalog([]ProductSpec{
			{ID: "x", Name: "X", Price: "1", Position: 1},
			{ID: "x", Name: "Y", Price: "1", Position: 2},
		}, "BRL")
		assert.Error(t, err)
	})
}
