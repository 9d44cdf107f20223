package domain

import (
	"context"
	"errors"
)

type UpsertSupplierRequest struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`

	ICO *string `json:"ico,omitempty"`
	DIC *string `json:"dic,omitempty"`

	BankAccount   *string `json:"bank_account,omitempty"`
	IsNonVATPayer bool    `json:"is_non_vat_payer"`

	RegistrationType       *string `json:"registration_type,omitempty"`
	RegistrationCourt      *string `json:"registration_court,omitempty"`
	RegistrationFileNumber *string `json:"registration_file_number,omitempty"`
}

type Service interface {
	// GetByActor returns the issuing business owned by the acting user.
	GetByActor(ctx context.Context) (Supplier, error)
	// Upsert creates the acting user's profile or replaces its fields.
	Upsert(ctx context.Context, req UpsertSupplierRequest) (Supplier, error)
}

var (
	ErrInvalidActor   = errors.New("invalid_actor")
	ErrProfileMissing = errors.New("supplier_profile_missing")
	ErrInvalidProfile = errors.New("invalid_supplier_profile")
)
