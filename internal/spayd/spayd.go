// Package spayd builds Short Payment Descriptor strings and payment QR
// codes for Czech banking apps.
//
// Format: SPD*1.0*ACC:{IBAN}*AM:{amount}*CC:{currency}*MSG:{message}*X-VS:{variable_symbol}
package spayd

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "CZK"

	// Field length caps from the SPAYD specification.
	maxMessageLen   = 60
	maxRecipientLen = 35
)

// ErrMissingField is returned when a required SPAYD field is absent.
var ErrMissingField = errors.New("iban and a positive amount are required")

type Options struct {
	IBAN           string
	Amount         decimal.Decimal
	Currency       string
	Message        string
	VariableSymbol string
	ConstantSymbol string
	SpecificSymbol string
	RecipientName  string
}

// Encode renders the canonical descriptor string. Field order and key casing
// are fixed; banking apps reject reordered payloads.
func Encode(opts Options) (string, error) {
	iban := NormalizeIBAN(opts.IBAN)
	if iban == "" || opts.Amount.Sign() <= 0 {
		return "", ErrMissingField
	}

	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	parts := []string{
		"SPD",
		"1.0",
		"ACC:" + iban,
		"AM:" + opts.Amount.StringFixed(2),
		"CC:" + currency,
	}

	if opts.Message != "" {
		parts = append(parts, "MSG:"+truncateRunes(opts.Message, maxMessageLen))
	}
	if opts.VariableSymbol != "" {
		parts = append(parts, "X-VS:"+opts.VariableSymbol)
	}
	if opts.ConstantSymbol != "" {
		parts = append(parts, "X-KS:"+opts.ConstantSymbol)
	}
	if opts.SpecificSymbol != "" {
		parts = append(parts, "X-SS:"+opts.SpecificSymbol)
	}
	if opts.RecipientName != "" {
		parts = append(parts, "RN:"+truncateRunes(opts.RecipientName, maxRecipientLen))
	}

	return strings.Join(parts, "*"), nil
}

// truncateRunes caps s at n characters, not bytes, so multi-byte text is
// never cut mid-rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
