package domain

import "github.com/shopspring/decimal"

// Product is the marketplace product read model.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Inventory int             `json:"inventory"`
	Status    string          `json:"status"`
}
