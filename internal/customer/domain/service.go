package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Street  string  `json:"street"`
	City    string  `json:"city"`
	ZipCode string  `json:"zip_code"`
	Country string  `json:"country"`
	ICO     *string `json:"ico,omitempty"`
	DIC     *string `json:"dic,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
}

var (
	ErrInvalidActor    = errors.New("invalid_actor")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrNotFound        = errors.New("customer_not_found")
)
