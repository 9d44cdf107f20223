package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a counterparty saved by a user for reuse across invoices.
type Customer struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"not null;index" json:"user_id"`

	Name    string `gorm:"type:text;not null" json:"name"`
	Street  string `gorm:"type:text;not null" json:"street"`
	City    string `gorm:"type:text;not null" json:"city"`
	ZipCode string `gorm:"type:text;not null" json:"zip_code"`
	Country string `gorm:"type:text;not null" json:"country"`

	ICO *string `gorm:"column:ico;type:text" json:"ico,omitempty"`
	DIC *string `gorm:"column:dic;type:text" json:"dic,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
