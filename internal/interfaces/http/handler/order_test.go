package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	orderapp "github.com/loja/backend/internal/application/order"
	"github.com/loja/backend/internal/domain/catalog"
	"github.com/loja/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDispatcher implements orderapp.Dispatcher for testing
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Publish(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type orderFixture struct {
	router     *gin.Engine
	dispatcher *MockDispatcher
	minted     *int
}

func setupOrderHandler(t *testing.T) orderFixture {
	t.Helper()

	minted := 0
	ids := order.IDGeneratorFunc(func() string {
		minted++
		return "a1b2c3d4"
	})
	dispatcher := new(MockDispatcher)
	service := orderapp.NewOrderService(
		catalog.NewDefaultCatalog(),
		dispatcher,
		orderapp.NewConfirmationComposer("https://wa.me/", "55"),
		orderapp.WithIDGenerator(ids),
		orderapp.WithClock(func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }),
	)

	router := gin.New()
	router.POST("/api/pedido", NewOrderHandler(service).PlaceOrder)

	return orderFixture{router: router, dispatcher: dispatcher, minted: &minted}
}

func (f orderFixture) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/pedido", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	f := setupOrderHandler(t)
	f.dispatcher.On("Publish", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.ID == "a1b2c3d4" && o.Product.Position == 1
	})).Return(nil).Once()

	w := f.post(`{"produto":"caixa-vermelha","cliente":{"nome":"Ana","telefone":"(11) 98888-7777"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	f.dispatcher.AssertExpectations(t)

	var resp PlaceOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "a1b2c3d4", resp.OrderID)
	assert.Equal(t, "caixa-vermelha", resp.Product.ID)
	assert.Equal(t, "Caixa Vermelha", resp.Product.Name)
	assert.Equal(t, "#FF0000", resp.Product.Color)
	assert.Equal(t, 25.00, resp.Product.Price)
	assert.Equal(t, 1, resp.Product.Position)
	assert.Contains(t, resp.WhatsAppLink, "5511988887777")

	link, err := url.Parse(resp.WhatsAppLink)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", link.Host)
	assert.Contains(t, link.Query().Get("text"), "*Pedido:* a1b2c3d4")
	assert.Contains(t, link.Query().Get("text"), "*Cliente:* Ana")
}

func TestOrderHandler_PlaceOrder_ResponseShape(t *testing.T) {
	f := setupOrderHandler(t)
	f.dispatcher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	w := f.post(`{"produto":"caixa-azul","cliente":{"nome":"Bruno","telefone":"21999990000"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.ElementsMatch(t, []string{"sucesso", "pedidoId", "linkWhatsApp", "produto"}, keys(raw))

	produto, ok := raw["produto"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"id", "nome", "cor", "preco", "posicao"}, keys(produto))
	assert.Equal(t, float64(2), produto["posicao"])
}

func TestOrderHandler_PlaceOrder_DispatchFailureStillConfirms(t *testing.T) {
	f := setupOrderHandler(t)
	f.dispatcher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	w := f.post(`{"produto":"caixa-verde","cliente":{"nome":"Carla","telefone":"11 90000-1111"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sucesso":true`)
	assert.Equal(t, 1, *f.minted)
}

func TestOrderHandler_PlaceOrder_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty product and customer", `{"produto":"","cliente":{}}`},
		{"empty object", `{}`},
		{"missing customer", `{"produto":"caixa-azul"}`},
		{"null customer", `{"produto":"caixa-azul","cliente":null}`},
		{"missing phone", `{"produto":"caixa-azul","cliente":{"nome":"Ana"}}`},
		{"missing name", `{"produto":"caixa-azul","cliente":{"telefone":"11988887777"}}`},
		{"blank name", `{"produto":"caixa-azul","cliente":{"nome":"   ","telefone":"11988887777"}}`},
		{"blank product", `{"produto":"   ","cliente":{"nome":"Ana","telefone":"11988887777"}}`},
		{"phone without digits", `{"produto":"caixa-azul","cliente":{"nome":"Ana","telefone":"não tenho"}}`},
		{"wrong types", `{"produto":42,"cliente":{"nome":"Ana","telefone":"11988887777"}}`},
		{"malformed JSON", `{"produto":`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupOrderHandler(t)

			w := f.post(tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"erro":"Dados incompletos"}`, w.Body.String())
			assert.Equal(t, 0, *f.minted, "no order may be minted")
			f.dispatcher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderHandler_PlaceOrder_UnknownProduct(t *testing.T) {
	f := setupOrderHandler(t)

	w := f.post(`{"produto":"caixa-roxa","cliente":{"nome":"Ana","telefone":"11988887777"}}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"erro":"Produto não encontrado"}`, w.Body.String())
	assert.Equal(t, 0, *f.minted)
	f.dispatcher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlaceOrderRequest_ToInput(t *testing.T) {
	req := PlaceOrderRequest{
		ProductID: "caixa-azul",
		Customer:  &CustomerRequest{Name: "Ana", Phone: "11988887777"},
	}
	assert.Equal(t, orderapp.PlaceOrderInput{
		ProductID:     "caixa-azul",
		CustomerName:  "Ana",
		CustomerPhone: "11988887777",
	}, req.ToInput())

	assert.Equal(t, orderapp.PlaceOrderInput{ProductID: "x"}, PlaceOrderRequest{ProductID: "x"}.ToInput())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestOrderHandler_PlaceOrder_LinkEncoding(t *testing.T) {
	f := setupOrderHandler(t)
	f.dispatcher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	w := f.post(`{"produto":"caixa-amarela","cliente":{"nome":"José da Silva","telefone":"+55 (11) 98888-7777"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlaceOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.WhatsAppLink, "https://wa.me/555511988887777?text="))
	assert.Contains(t, resp.WhatsAppLink, "Jos%C3%A9%20da%20Silva")
}
