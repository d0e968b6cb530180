package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	BRL Currency = "BRL" // Brazilian Real (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
)

// DefaultCurrency is the default currency for the storefront
const DefaultCurrency = BRL

// PricePlaces is the number of decimal places prices are displayed with
const PricePlaces int32 = 2

var currencySymbols = map[Currency]string{
	BRL: "R$",
	USD: "US$",
	EUR: "€",
}

// Money is a value object representing monetary amounts
// It is immutable - all operations return new Money instances
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, currency)
}

// NewMoneyBRL creates Money in BRL
func NewMoneyBRL(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: BRL}
}

// MustMoneyBRL creates Money in BRL from a string and panics on malformed input.
// Only meant for compile-time constants such as the default catalog.
func MustMoneyBRL(amount string) Money {
	m, err := NewMoneyFromString(amount, BRL)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// StringFixed returns the amount with exactly PricePlaces decimals, e.g. "25.00"
func (m Money) StringFixed() string {
	return m.amount.StringFixed(PricePlaces)
}

// Float64 returns the amount rounded to PricePlaces as a float64.
// Used for JSON payloads where a number is expected.
func (m Money) Float64() float64 {
	return m.amount.Round(PricePlaces).InexactFloat64()
}

// Symbol returns the display symbol for the currency, falling back to the code
func (m Money) Symbol() string {
	if s, ok := currencySymbols[m.currency]; ok {
		return s
	}
	return string(m.currency)
}

// Format returns a human readable amount, e.g. "R$ 25.00"
func (m Money) Format() string {
	return m.Symbol() + " " + m.StringFixed()
}

// String returns a string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.StringFixed(), m.currency)
}
