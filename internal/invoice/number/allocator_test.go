package number

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&invoicedomain.Invoice{}, &invoicedomain.InvoiceItem{}))
	return db
}

func seedInvoice(t *testing.T, db *gorm.DB, node *snowflake.Node, supplierID snowflake.ID, num int64, createdAt time.Time) {
	t.Helper()
	err := db.Create(&invoicedomain.Invoice{
		ID:            node.Generate(),
		SupplierID:    supplierID,
		InvoiceNumber: num,
		ClientName:    "Test klient",
		ClientStreet:  "Ulice 1",
		ClientCity:    "Praha",
		ClientZipCode: "11000",
		ClientCountry: "Czech Republic",
		IssueDate:     createdAt,
		DueDate:       createdAt.AddDate(0, 0, 14),
		Subtotal:      decimal.New(100, 0),
		VATAmount:     decimal.Zero,
		Total:         decimal.New(100, 0),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}).Error
	require.NoError(t, err)
}

func TestAllocate_FirstOfDayStartsAtOne(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	alloc := NewAllocator()

	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	supplierID := node.Generate()

	num, err := alloc.Allocate(context.Background(), db, supplierID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2503150001), num)
	assert.Equal(t, "2503150001", FormatNumber(num))
}

func TestAllocate_ContinuesTodaysSequence(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	alloc := NewAllocator()

	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	supplierID := node.Generate()
	seedInvoice(t, db, node, supplierID, 2503150001, now.Add(-2*time.Hour))
	seedInvoice(t, db, node, supplierID, 2503150002, now.Add(-time.Hour))

	num, err := alloc.Allocate(context.Background(), db, supplierID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2503150003), num)
}

func TestAllocate_IgnoresOtherDaysAndSuppliers(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	alloc := NewAllocator()

	now := time.Date(2025, 3, 15, 0, 10, 0, 0, time.UTC)
	supplierID := node.Generate()
	otherSupplier := node.Generate()

	// Yesterday's run for the same supplier and today's run for another
	// supplier must not influence the sequence.
	seedInvoice(t, db, node, supplierID, 2503140007, now.AddDate(0, 0, -1))
	seedInvoice(t, db, node, otherSupplier, 2503150004, now.Add(-5*time.Minute))

	num, err := alloc.Allocate(context.Background(), db, supplierID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2503150001), num)
}

func TestAllocate_SequenceExhausted(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	alloc := NewAllocator()

	now := time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)
	supplierID := node.Generate()
	seedInvoice(t, db, node, supplierID, 2503159999, now.Add(-time.Minute))

	_, err := alloc.Allocate(context.Background(), db, supplierID, now)
	assert.ErrorIs(t, err, invoicedomain.ErrSequenceExhausted)
}

func TestFormatNumber_ZeroPadsToTenDigits(t *testing.T) {
	assert.Equal(t, "0101010001", FormatNumber(101010001))
	assert.Len(t, FormatNumber(2503150042), 10)
}
