package spayd

import (
	"regexp"
	"strings"
)

// Czech IBAN: country code + 2 check digits + 4-digit bank code + 6-digit
// account prefix + 10-digit account number.
var czIBANPattern = regexp.MustCompile(`^CZ\d{22}$`)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeIBAN strips whitespace and upper-cases the identifier.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

// IsValidIBAN shape-validates a Czech IBAN. The ISO 7064 MOD-97 checksum is
// intentionally not verified; only the CZ + 22 digit shape is accepted.
func IsValidIBAN(iban string) bool {
	return czIBANPattern.MatchString(NormalizeIBAN(iban))
}

// AccountToIBAN composes an IBAN-shaped identifier from a legacy Czech
// account (prefix-number/bank code). This is an approximate conversion with
// placeholder check digits, not a certified IBAN calculation; the result
// always matches the CZ + 22 digit shape.
func AccountToIBAN(accountNumber, bankCode, prefix string) string {
	if prefix == "" {
		prefix = "0"
	}

	paddedBankCode := padDigits(bankCode, 4)
	paddedPrefix := padDigits(prefix, 6)
	paddedAccount := padDigits(accountNumber, 10)

	// Placeholder check digits; real ones need the MOD-97 computation.
	const checkDigits = "65"

	return "CZ" + checkDigits + paddedBankCode + paddedPrefix + paddedAccount
}

// ParseAccountString converts the conventional "prefix-number/bankCode"
// notation to the IBAN shape. ok is false when the notation is unusable.
func ParseAccountString(account string) (iban string, ok bool) {
	account = strings.TrimSpace(account)
	slash := strings.LastIndex(account, "/")
	if slash <= 0 || slash == len(account)-1 {
		return "", false
	}

	bankCode := account[slash+1:]
	body := account[:slash]

	prefix := ""
	if dash := strings.Index(body, "-"); dash >= 0 {
		prefix = body[:dash]
		body = body[dash+1:]
	}
	if nonDigits.MatchString(body) || nonDigits.MatchString(bankCode) || body == "" {
		return "", false
	}

	return AccountToIBAN(body, bankCode, prefix), true
}

// padDigits keeps only digits, left-pads to width with zeros, and keeps the
// rightmost digits when the input is too long, so the composed IBAN always
// holds its fixed shape.
func padDigits(s string, width int) string {
	s = nonDigits.ReplaceAllString(s, "")
	if len(s) > width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
