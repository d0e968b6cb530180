package handler

import (
	catalogapp "github.com/loja/backend/internal/application/catalog"
	orderapp "github.com/loja/backend/internal/application/order"
)

// PlaceOrderRequest is the body of POST /api/pedido
type PlaceOrderRequest struct {
	ProductID string           `json:"produto" binding:"required"`
	Customer  *CustomerRequest `json:"cliente" binding:"required"`
}

// CustomerRequest identifies the buyer
type CustomerRequest struct {
	Name  string `json:"nome" binding:"required"`
	Phone string `json:"telefone" binding:"required,hasdigits"`
}

// ToInput converts the request to the application input
func (r PlaceOrderRequest) ToInput() orderapp.PlaceOrderInput {
	input := orderapp.PlaceOrderInput{ProductID: r.ProductID}
	if r.Customer != nil {
		input.CustomerName = r.Customer.Name
		input.CustomerPhone = r.Customer.Phone
	}
	return input
}

// PlaceOrderResponse is returned for an accepted order
type PlaceOrderResponse struct {
	Success      bool                       `json:"sucesso"`
	OrderID      string                     `json:"pedidoId"`
	WhatsAppLink string                     `json:"linkWhatsApp"`
	Product      catalogapp.ProductResponse `json:"produto"`
}

// NewPlaceOrderResponse builds the response from the application output
func NewPlaceOrderResponse(out *orderapp.PlaceOrderOutput) PlaceOrderResponse {
	return PlaceOrderResponse{
		Success:      true,
		OrderID:      out.OrderID,
		WhatsAppLink: out.Link,
		Product:      out.Product,
	}
}
