package order

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/loja/backend/internal/domain/catalog"
	"github.com/loja/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, productID, name, phone string) *order.Order {
	t.Helper()
	product, err := catalog.NewDefaultCatalog().Lookup(productID)
	require.NoError(t, err)
	customer, err := order.NewCustomerInfo(name, phone)
	require.NoError(t, err)
	o, err := order.NewOrder("a1b2c3d4", product, customer, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestConfirmationComposer_Compose(t *testing.T) {
	o := newTestOrder(t, "caixa-vermelha", "Ana", "(11) 98888-7777")
	c := NewConfirmationComposer("https://wa.me/", "55")

	got := c.Compose(o)

	wantMessage := "Olá! Seu pedido foi confirmado!\n\n" +
		"🛍️ *Pedido:* a1b2c3d4\n" +
		"📦 *Produto:* Caixa Vermelha\n" +
		"💰 *Valor:* R$ 25.00\n" +
		"👤 *Cliente:* Ana\n\n" +
		"Seu produto está sendo preparado pelo nosso sistema automatizado! 🤖"

	assert.Equal(t, "a1b2c3d4", got.OrderID)
	assert.Equal(t, "Caixa Vermelha", got.ProductName)
	assert.Equal(t, "25.00", got.Price.StringFixed())
	assert.Equal(t, wantMessage, got.Message)

	require.True(t, strings.HasPrefix(got.Link, "https://wa.me/5511988887777?text="))
	u, err := url.Parse(got.Link)
	require.NoError(t, err)
	assert.Equal(t, wantMessage, u.Query().Get("text"))
	assert.NotContains(t, got.Link, "+")
	assert.Contains(t, got.Link, "Ol%C3%A1!%20Seu%20pedido")
}

func TestConfirmationComposer_IsDeterministic(t *testing.T) {
	o := newTestOrder(t, "caixa-azul", "Bruno", "21 99999-0000")
	c := NewConfirmationComposer("", "")

	assert.Equal(t, c.Compose(o), c.Compose(o))
	assert.True(t, strings.HasPrefix(c.Compose(o).Link, "https://wa.me/5521999990000?text="))
}

func TestNewConfirmationComposer_Normalizes(t *testing.T) {
	o := newTestOrder(t, "caixa-verde", "Carla", "11988887777")

	c := NewConfirmationComposer("https://api.whatsapp.com/send", "+351")

	assert.True(t, strings.HasPrefix(c.Compose(o).Link, "https://api.whatsapp.com/send/35111988887777?text="))
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abcXYZ019", "abcXYZ019"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a b", "a%20b"},
		{"a+b&c=d/e?f#g", "a%2Bb%26c%3Dd%2Fe%3Ff%23g"},
		{"\n", "%0A"},
		{"Olá", "Ol%C3%A1"},
		{"🤖", "%F0%9F%A4%96"},
		{"*Pedido:*", "*Pedido%3A*"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeURIComponent(tt.in))
		})
	}
}
