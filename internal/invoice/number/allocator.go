// Package number allocates per-supplier, per-day sequential invoice numbers.
package number

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	"gorm.io/gorm"
)

// Daily sequence occupies the last 4 digits of the number.
const (
	sequenceModulus  = 10000
	maxDailySequence = 9999
)

type Allocator struct{}

func NewAllocator() *Allocator { return &Allocator{} }

// Allocate computes the next invoice number for the supplier on the calendar
// day of now: YYMMDD * 10000 + sequence, where the sequence continues the
// highest number already persisted today and starts at 1 otherwise.
//
// The read is not atomic with the later insert. Callers run Allocate inside
// the persisting transaction and rely on the unique (supplier_id,
// invoice_number) index to surface lost races as duplicate-key errors; the
// day is derived from now on every call, so a retry that crosses midnight
// allocates under the new date.
func (a *Allocator) Allocate(ctx context.Context, tx *gorm.DB, supplierID snowflake.ID, now time.Time) (int64, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var latest int64
	err := tx.WithContext(ctx).Raw(
		`SELECT COALESCE(MAX(invoice_number), 0)
		 FROM invoices
		 WHERE supplier_id = ? AND created_at >= ? AND created_at < ?`,
		supplierID,
		dayStart,
		dayEnd,
	).Scan(&latest).Error
	if err != nil {
		return 0, err
	}

	sequence := int64(1)
	if latest > 0 {
		sequence = latest%sequenceModulus + 1
	}
	if sequence > maxDailySequence {
		return 0, invoicedomain.ErrSequenceExhausted
	}

	prefix, err := strconv.ParseInt(now.Format("060102"), 10, 64)
	if err != nil {
		return 0, err
	}

	return prefix*sequenceModulus + sequence, nil
}

// FormatNumber renders the fixed-width wire form: 10 ASCII digits.
func FormatNumber(n int64) string {
	return fmt.Sprintf("%010d", n)
}
