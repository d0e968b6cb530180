package order

import (
	"fmt"
	"strings"

	"github.com/loja/backend/internal/domain/order"
	"github.com/loja/backend/internal/domain/shared/valueobject"
)

const (
	DefaultConfirmationBaseURL = "https://wa.me/"
	DefaultCountryCode         = "55"
)

const confirmationTemplate = "Olá! Seu pedido foi confirmado!\n\n" +
	"🛍️ *Pedido:* %s\n" +
	"📦 *Produto:* %s\n" +
	"💰 *Valor:* %s\n" +
	"👤 *Cliente:* %s\n\n" +
	"Seu produto está sendo preparado pelo nosso sistema automatizado! 🤖"

// Confirmation is what the customer gets back for an accepted order
type Confirmation struct {
	OrderID     string
	ProductName string
	Price       valueobject.Money
	Message     string
	Link        string
}

// ConfirmationComposer builds the confirmation message and the messaging deep link
type ConfirmationComposer struct {
	baseURL     string
	countryCode string
}

// NewConfirmationComposer creates a composer. Empty arguments fall back to
// DefaultConfirmationBaseURL and DefaultCountryCode.
func NewConfirmationComposer(baseURL, countryCode string) *ConfirmationComposer {
	if baseURL == "" {
		baseURL = DefaultConfirmationBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	countryCode = valueobject.NormalizePhone(countryCode)
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &ConfirmationComposer{baseURL: baseURL, countryCode: countryCode}
}

// Compose renders the confirmation for o. It has no side effects.
func (c *ConfirmationComposer) Compose(o *order.Order) Confirmation {
	msg := Message(o)
	return Confirmation{
		OrderID:     o.ID,
		ProductName: o.Product.Name,
		Price:       o.Product.Price,
		Message:     msg,
		Link:        c.baseURL + o.Customer.Phone.WithCountryCode(c.countryCode) + "?text=" + EncodeURIComponent(msg),
	}
}

// Message renders the pt-BR confirmation text for o
func Message(o *order.Order) string {
	return fmt.Sprintf(confirmationTemplate,
		o.ID,
		o.Product.Name,
		o.Product.Price.Format(),
		o.Customer.Name,
	)
}

const upperHex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s like the browser function of the same name:
// every UTF-8 byte is escaped except A-Z a-z 0-9 and - _ . ! ~ * ' ( ).
// Spaces become %20.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
