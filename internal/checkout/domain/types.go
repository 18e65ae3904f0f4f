package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const CurrencyUSD = "USD"

type Money struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// String renders m as "$1234.50" style text.
func (m Money) String() string {
	if m.Currency == CurrencyUSD {
		return "$" + m.Amount.StringFixed(2)
	}
	return m.Amount.StringFixed(2) + " " + m.Currency
}

// MarshalJSON writes the amount with two decimals, as the cart total is.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Currency string `json:"currency"`
		Amount   string `json:"amount"`
	}{m.Currency, m.Amount.StringFixed(2)})
}

type QuoteLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unitPrice"`
	LineTotal Money  `json:"lineTotal"`
	// Available is false when the product is out of stock or the
	// requested quantity exceeds the stock count.
	Available bool `json:"available"`
}

type Quote struct {
	SessionID   string      `json:"sessionId"`
	Lines       []QuoteLine `json:"lines"`
	ItemCount   int         `json:"itemCount"`
	Total       Money       `json:"total"`
	Purchasable bool        `json:"purchasable"`
}
