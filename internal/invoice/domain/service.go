package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItemInput is one requested invoice line. VATRate nil means no VAT on
// the line; on reverse-charge invoices any provided rate is discarded.
type LineItemInput struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	VATRate     *decimal.Decimal `json:"vat_rate,omitempty"`
}

type CreateInvoiceRequest struct {
	CustomerID *string `json:"customer_id,omitempty"`

	ClientName    string `json:"client_name"`
	ClientStreet  string `json:"client_street"`
	ClientCity    string `json:"client_city"`
	ClientZipCode string `json:"client_zip_code"`
	ClientCountry string `json:"client_country"`

	IssueDate         time.Time  `json:"issue_date"`
	DueDate           time.Time  `json:"due_date"`
	TaxableSupplyDate *time.Time `json:"taxable_supply_date,omitempty"`

	Description *string `json:"description,omitempty"`

	Items           []LineItemInput `json:"items"`
	IsReverseCharge bool            `json:"is_reverse_charge"`
}

// PaymentQR carries the payment artifacts for a committed invoice. Available
// is false when the supplier has no usable bank account; that is not an
// error, the invoice simply ships without a payment code.
type PaymentQR struct {
	Available bool   `json:"available"`
	SPAYD     string `json:"spayd,omitempty"`
	QRDataURI string `json:"qr_data_uri,omitempty"`
}

type Service interface {
	// Create validates the request, resolves the acting user's supplier and
	// optional customer, and issues the invoice atomically with a freshly
	// allocated number.
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	// PaymentQR derives the SPAYD descriptor and QR image for a committed
	// invoice, best effort.
	PaymentQR(ctx context.Context, id string) (PaymentQR, error)
}

// NumberAllocator computes the next invoice number for a supplier on the
// calendar day of now. It must run inside the same transaction that persists
// the invoice.
type NumberAllocator interface {
	Allocate(ctx context.Context, tx *gorm.DB, supplierID snowflake.ID, now time.Time) (int64, error)
}
