package order

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/loja/backend/internal/domain/catalog"
	"github.com/loja/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redBox(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewDefaultCatalog().Lookup("caixa-vermelha")
	require.NoError(t, err)
	return p
}

func TestNewCustomerInfo(t *testing.T) {
	t.Run("normalizes name and phone", func(t *testing.T) {
		c, err := NewCustomerInfo("  Ana ", "(11) 98888-7777")
		require.NoError(t, err)
		assert.Equal(t, "Ana", c.Name)
		assert.Equal(t, "11988887777", c.Phone.Digits())
	})

	tests := []struct {
		name  string
		cName string
		phone string
	}{
		{"empty name", "", "11988887777"},
		{"blank name", "   ", "11988887777"},
		{"empty phone", "Ana", ""},
		{"phone without digits", "Ana", "(--) ----"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewCustomerInfo(tt.cName, tt.phone)
			assert.ErrorIs(t, err, ErrIncompleteData)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestNewOrder(t *testing.T) {
	customer, err := NewCustomerInfo("Ana", "(11) 98888-7777")
	require.NoError(t, err)
	now := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

	t.Run("creates order", func(t *testing.T) {
		o, err := NewOrder("a1b2c3d4", redBox(t), customer, now)
		require.NoError(t, err)
		assert.Equal(t, "a1b2c3d4", o.ID)
		assert.Equal(t, "caixa-vermelha", o.Product.ID)
		assert.Equal(t, "Ana", o.Customer.Name)
		assert.Equal(t, now, o.CreatedAt)
	})

	t.Run("requires an id", func(t *testing.T) {
		_, err := NewOrder(" ", redBox(t), customer, now)
		assert.Error(t, err)
	})

	t.Run("requires a product", func(t *testing.T) {
		_, err := NewOrder("a1b2c3d4", nil, customer, now)
		assert.Error(t, err)
	})

	t.Run("requires a validated customer", func(t *testing.T) {
		_, err := NewOrder("a1b2c3d4", redBox(t), CustomerInfo{Name: "Ana"}, now)
		assert.ErrorIs(t, err, ErrIncompleteData)
	})
}

func TestNewDispatchMessage(t *testing.T) {
	customer, err := NewCustomerInfo("Ana", "11988887777")
	require.NoError(t, err)
	createdAt := time.Date(2026, 10, 18, 9, 30, 15, 123456789, time.FixedZone("BRT", -3*3600))
	o, err := NewOrder("a1b2c3d4", redBox(t), customer, createdAt)
	require.NoError(t, err)

	msg := NewDispatchMessage(o)
	assert.Equal(t, DispatchMessage{
		OrderID:   "a1b2c3d4",
		Product:   "Caixa Vermelha",
		Position:  1,
		Customer:  "Ana",
		Timestamp: "2026-10-18T12:30:15.123Z",
	}, msg)

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, msg, NewDispatchMessage(o))
	})

	t.Run("serializes with wire field names", func(t *testing.T) {
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"pedidoId": "a1b2c3d4",
			"produto": "Caixa Vermelha",
			"posicao": 1,
			"cliente": "Ana",
			"timestamp": "2026-10-18T12:30:15.123Z"
		}`, string(data))
	})
}
