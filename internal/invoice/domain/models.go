// Package domain contains persistence models and contracts for invoice
// issuance.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Invoice is an issued invoice. Rows are immutable once committed; the
// invoice number is assigned exactly once at creation.
//
// InvoiceNumber is a 10-digit value: YYMMDD of the creation day followed by a
// 4-digit per-supplier daily sequence. Uniqueness per supplier is enforced by
// ux_invoices_supplier_number, which is what turns a lost allocation race
// into a retryable duplicate-key error.
type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	SupplierID    snowflake.ID  `gorm:"not null;index;uniqueIndex:ux_invoices_supplier_number" json:"supplier_id"`
	CustomerID    *snowflake.ID `gorm:"index" json:"customer_id,omitempty"`
	InvoiceNumber int64         `gorm:"not null;uniqueIndex:ux_invoices_supplier_number" json:"invoice_number"`

	ClientName    string `gorm:"type:text;not null" json:"client_name"`
	ClientStreet  string `gorm:"type:text;not null" json:"client_street"`
	ClientCity    string `gorm:"type:text;not null" json:"client_city"`
	ClientZipCode string `gorm:"type:text;not null" json:"client_zip_code"`
	ClientCountry string `gorm:"type:text;not null" json:"client_country"`

	IssueDate         time.Time  `gorm:"not null" json:"issue_date"`
	DueDate           time.Time  `gorm:"not null" json:"due_date"`
	TaxableSupplyDate *time.Time `gorm:"column:taxable_supply_date" json:"taxable_supply_date,omitempty"`

	Description *string `gorm:"type:text" json:"description,omitempty"`

	Subtotal  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	VATAmount decimal.Decimal `gorm:"column:vat_amount;type:numeric(14,2);not null" json:"vat_amount"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`

	IsReverseCharge bool `gorm:"not null;default:false" json:"is_reverse_charge"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a line on an invoice. VATRate is nil when no rate applies,
// which on reverse-charge invoices means the liability shifted to the
// counterparty rather than a zero rate.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`

	Description string           `gorm:"type:text;not null" json:"description"`
	Quantity    decimal.Decimal  `gorm:"type:numeric(12,3);not null" json:"quantity"`
	UnitPrice   decimal.Decimal  `gorm:"column:unit_price;type:numeric(14,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal  `gorm:"column:line_total;type:numeric(14,2);not null" json:"line_total"`
	VATRate     *decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2)" json:"vat_rate,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
