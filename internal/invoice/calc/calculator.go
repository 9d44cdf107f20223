// Package calc computes invoice totals with exact decimal arithmetic.
package calc

import (
	"fmt"

	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Totals is the resolved financial summary of an item set. Subtotal and
// VATAmount are rounded half-up to 2 decimals exactly once, at output;
// Total is their exact sum.
type Totals struct {
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal

	// LineTotals[i] = Quantity[i] * UnitPrice[i], unrounded.
	LineTotals []decimal.Decimal
	// VATRates[i] is the rate recorded on item i: nil on reverse-charge
	// invoices (liability shifted, not a zero rate) and for items with no
	// rate supplied.
	VATRates []*decimal.Decimal
}

// ValidateItems checks the per-item rules and reports every violation.
func ValidateItems(items []invoicedomain.LineItemInput) []invoicedomain.FieldError {
	var fields []invoicedomain.FieldError
	for i, item := range items {
		if item.Quantity.Sign() <= 0 {
			fields = append(fields, invoicedomain.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Code:    "invalid_quantity",
				Message: "quantity must be greater than 0",
			})
		}
		if item.UnitPrice.Sign() <= 0 {
			fields = append(fields, invoicedomain.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Code:    "invalid_unit_price",
				Message: "unit price must be greater than 0",
			})
		}
		if item.VATRate != nil && (item.VATRate.Sign() < 0 || item.VATRate.GreaterThan(oneHundred)) {
			fields = append(fields, invoicedomain.FieldError{
				Field:   fmt.Sprintf("items[%d].vat_rate", i),
				Code:    "invalid_vat_rate",
				Message: "vat rate must be between 0 and 100",
			})
		}
	}
	return fields
}

// Compute resolves line totals, subtotal, VAT and total for the item set.
// Pure; never touches binary floating point.
func Compute(items []invoicedomain.LineItemInput, reverseCharge bool) (Totals, error) {
	if fields := ValidateItems(items); len(fields) > 0 {
		return Totals{}, &invoicedomain.ValidationError{Fields: fields}
	}

	subtotal := decimal.Zero
	vat := decimal.Zero
	lineTotals := make([]decimal.Decimal, len(items))
	rates := make([]*decimal.Decimal, len(items))

	for i, item := range items {
		lineTotal := item.Quantity.Mul(item.UnitPrice)
		lineTotals[i] = lineTotal
		subtotal = subtotal.Add(lineTotal)

		if reverseCharge || item.VATRate == nil {
			continue
		}
		rate := *item.VATRate
		rates[i] = &rate
		vat = vat.Add(lineTotal.Mul(rate).Div(oneHundred))
	}

	if reverseCharge {
		vat = decimal.Zero
	}

	subtotal = subtotal.Round(2)
	vat = vat.Round(2)

	return Totals{
		Subtotal:   subtotal,
		VATAmount:  vat,
		Total:      subtotal.Add(vat),
		LineTotals: lineTotals,
		VATRates:   rates,
	}, nil
}
