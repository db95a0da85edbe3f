package models

import "github.com/shopspring/decimal"

func init() {
	// prices go over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// LineSubtotal is unitPrice × quantity.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
