// Package domain contains the issuing-business profile owned by each user.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Registration kinds recognised on Czech invoices.
const (
	RegistrationCommercialRegister = "obchodni_rejstrik"
	RegistrationTradeRegister      = "zivnostensky_rejstrik"
	RegistrationOtherRegister      = "jiny_rejstrik"
	RegistrationNone               = "bez_zapisu"
)

// Supplier is the business issuing invoices. One profile per user.
type Supplier struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"not null;uniqueIndex" json:"user_id"`

	Name    string `gorm:"type:text;not null" json:"name"`
	Street  string `gorm:"type:text;not null" json:"street"`
	City    string `gorm:"type:text;not null" json:"city"`
	ZipCode string `gorm:"type:text;not null" json:"zip_code"`
	Country string `gorm:"type:text;not null" json:"country"`

	ICO *string `gorm:"column:ico;type:text" json:"ico,omitempty"`
	DIC *string `gorm:"column:dic;type:text" json:"dic,omitempty"`

	BankAccount   *string `gorm:"type:text" json:"bank_account,omitempty"`
	IsNonVATPayer bool    `gorm:"column:is_non_vat_payer;not null;default:false" json:"is_non_vat_payer"`

	RegistrationType       *string `gorm:"type:text" json:"registration_type,omitempty"`
	RegistrationCourt      *string `gorm:"type:text" json:"registration_court,omitempty"`
	RegistrationFileNumber *string `gorm:"type:text" json:"registration_file_number,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Supplier) TableName() string { return "suppliers" }

// RegistrationText composes the statutory registration clause printed on
// invoices, or nil when the profile carries no usable registration data.
func (s Supplier) RegistrationText() *string {
	if s.RegistrationType == nil {
		return nil
	}

	var text string
	switch *s.RegistrationType {
	case RegistrationCommercialRegister:
		if s.RegistrationCourt == nil || s.RegistrationFileNumber == nil {
			return nil
		}
		text = fmt.Sprintf("Společnost je zapsána v obchodním rejstříku vedeném %s, oddíl %s",
			*s.RegistrationCourt, *s.RegistrationFileNumber)
	case RegistrationTradeRegister:
		text = "Fyzická osoba zapsaná v živnostenském rejstříku"
	case RegistrationOtherRegister:
		if s.RegistrationCourt == nil || s.RegistrationFileNumber == nil {
			return nil
		}
		text = fmt.Sprintf("Zápis v rejstříku: %s, %s", *s.RegistrationCourt, *s.RegistrationFileNumber)
	case RegistrationNone:
		text = "Není zapsán v obchodním rejstříku"
	default:
		return nil
	}

	return &text
}
