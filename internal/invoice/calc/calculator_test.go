package calc

import (
	"errors"
	"testing"

	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCompute_RoundsHalfUpOnce(t *testing.T) {
	// 3 * 33.33 = 99.99; 21% VAT = 20.9979 -> 21.00
	totals, err := Compute([]invoicedomain.LineItemInput{
		{Description: "Consulting", Quantity: dec("3"), UnitPrice: dec("33.33"), VATRate: decPtr("21")},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "99.99", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "21.00", totals.VATAmount.StringFixed(2))
	assert.Equal(t, "120.99", totals.Total.StringFixed(2))
}

func TestCompute_SubtotalMatchesLineSums(t *testing.T) {
	items := []invoicedomain.LineItemInput{
		{Description: "A", Quantity: dec("2"), UnitPrice: dec("100.50"), VATRate: decPtr("21")},
		{Description: "B", Quantity: dec("0.5"), UnitPrice: dec("999.99")},
		{Description: "C", Quantity: dec("10"), UnitPrice: dec("0.07"), VATRate: decPtr("12")},
	}

	totals, err := Compute(items, false)
	require.NoError(t, err)

	want := dec("201").Add(dec("499.995")).Add(dec("0.7")).Round(2)
	assert.True(t, totals.Subtotal.Equal(want), "subtotal %s != %s", totals.Subtotal, want)
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.VATAmount)))
	assert.Len(t, totals.LineTotals, 3)
	assert.True(t, totals.LineTotals[1].Equal(dec("499.995")))
	assert.Nil(t, totals.VATRates[1])
	require.NotNil(t, totals.VATRates[0])
	assert.True(t, totals.VATRates[0].Equal(dec("21")))
}

func TestCompute_ReverseChargeShiftsLiability(t *testing.T) {
	items := []invoicedomain.LineItemInput{
		{Description: "A", Quantity: dec("3"), UnitPrice: dec("33.33"), VATRate: decPtr("21")},
		{Description: "B", Quantity: dec("1"), UnitPrice: dec("500"), VATRate: decPtr("12")},
	}

	totals, err := Compute(items, true)
	require.NoError(t, err)

	assert.True(t, totals.VATAmount.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
	for i, rate := range totals.VATRates {
		assert.Nil(t, rate, "item %d should have no effective vat rate", i)
	}
}

func TestCompute_NilRateTreatedAsNoVAT(t *testing.T) {
	totals, err := Compute([]invoicedomain.LineItemInput{
		{Description: "A", Quantity: dec("1"), UnitPrice: dec("100")},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "0.00", totals.VATAmount.StringFixed(2))
	assert.Equal(t, "100.00", totals.Total.StringFixed(2))
}

func TestCompute_RejectsEveryOffendingField(t *testing.T) {
	items := []invoicedomain.LineItemInput{
		{Description: "ok", Quantity: dec("1"), UnitPrice: dec("10"), VATRate: decPtr("21")},
		{Description: "bad", Quantity: dec("0"), UnitPrice: dec("-1"), VATRate: decPtr("101")},
		{Description: "bad2", Quantity: dec("-3"), UnitPrice: dec("5")},
	}

	_, err := Compute(items, false)
	require.Error(t, err)

	var verr *invoicedomain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 4)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "items[1].quantity")
	assert.Contains(t, fields, "items[1].unit_price")
	assert.Contains(t, fields, "items[1].vat_rate")
	assert.Contains(t, fields, "items[2].quantity")
}

func TestCompute_NoDriftAcrossManyLines(t *testing.T) {
	// 100 lines of 0.1 * 0.1: binary floats would drift, decimals must not.
	items := make([]invoicedomain.LineItemInput, 100)
	for i := range items {
		items[i] = invoicedomain.LineItemInput{Description: "x", Quantity: dec("0.1"), UnitPrice: dec("0.1")}
	}

	totals, err := Compute(items, false)
	require.NoError(t, err)
	assert.Equal(t, "1.00", totals.Subtotal.StringFixed(2))
}
