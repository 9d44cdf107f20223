package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fakturio/fakturio/internal/clock"
	"github.com/fakturio/fakturio/internal/config"
	customerdomain "github.com/fakturio/fakturio/internal/customer/domain"
	"github.com/fakturio/fakturio/internal/invoice/calc"
	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	supplierdomain "github.com/fakturio/fakturio/internal/supplier/domain"
	"github.com/fakturio/fakturio/internal/userctx"
	"github.com/fakturio/fakturio/pkg/db"
	"github.com/fakturio/fakturio/pkg/db/option"
	"github.com/fakturio/fakturio/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Allocation conflicts are resolved by retrying the whole
// allocate-and-persist step; the jitter de-correlates concurrent retries.
const (
	maxCreateAttempts = 5
	maxRetryJitter    = 10 * time.Millisecond
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Allocator invoicedomain.NumberAllocator
	Issuance  *config.IssuanceConfigHolder
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID     *snowflake.Node
	clock     clock.Clock
	allocator invoicedomain.NumberAllocator
	issuance  *config.IssuanceConfigHolder

	invoicerepo  repository.Repository[invoicedomain.Invoice]
	supplierrepo repository.Repository[supplierdomain.Supplier]
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		allocator: p.Allocator,
		issuance:  p.Issuance,

		invoicerepo:  repository.ProvideStore[invoicedomain.Invoice](p.DB),
		supplierrepo: repository.ProvideStore[supplierdomain.Supplier](p.DB),
		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidActor
	}

	if err := validateCreate(req); err != nil {
		return invoicedomain.Invoice{}, err
	}

	supplier, err := s.supplierrepo.FindOne(ctx, &supplierdomain.Supplier{UserID: userID})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if supplier == nil {
		return invoicedomain.Invoice{}, supplierdomain.ErrProfileMissing
	}

	var customerID *snowflake.ID
	if req.CustomerID != nil {
		id, err := snowflake.ParseString(strings.TrimSpace(*req.CustomerID))
		if err != nil {
			return invoicedomain.Invoice{}, customerdomain.ErrNotFound
		}
		customer, err := s.customerrepo.FindOne(ctx, &customerdomain.Customer{ID: id, UserID: userID})
		if err != nil {
			return invoicedomain.Invoice{}, err
		}
		if customer == nil {
			return invoicedomain.Invoice{}, customerdomain.ErrNotFound
		}
		customerID = &customer.ID
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		issuanceAttempts.Inc()

		created, err := s.createOnce(ctx, supplier.ID, customerID, req)
		if err == nil {
			s.log.Info("invoice committed",
				zap.String("invoice_id", created.ID.String()),
				zap.Int64("invoice_number", created.InvoiceNumber),
				zap.Int("attempt", attempt),
			)
			return created, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return invoicedomain.Invoice{}, err
		}

		issuanceConflicts.Inc()
		s.log.Warn("invoice number collision, retrying",
			zap.String("supplier_id", supplier.ID.String()),
			zap.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return invoicedomain.Invoice{}, ctx.Err()
		case <-time.After(time.Duration(rand.Int63n(int64(maxRetryJitter)))):
		}
	}

	issuanceExhausted.Inc()
	return invoicedomain.Invoice{}, invoicedomain.ErrNumberConflictExhausted
}

// createOnce runs one allocate-and-persist attempt as a single transaction.
// The invoice number comes from the allocator with a fresh timestamp, so a
// retry after midnight rolls over to the new day's sequence.
func (s *Service) createOnce(ctx context.Context, supplierID snowflake.ID, customerID *snowflake.ID, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	var created invoicedomain.Invoice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.clock.Now()

		invoiceNumber, err := s.allocator.Allocate(ctx, tx, supplierID, now)
		if err != nil {
			return err
		}

		totals, err := calc.Compute(req.Items, req.IsReverseCharge)
		if err != nil {
			return err
		}

		clientCountry := strings.TrimSpace(req.ClientCountry)
		if clientCountry == "" {
			clientCountry = s.issuance.Get().DefaultCountry
		}

		invoiceID := s.genID.Generate()
		items := make([]invoicedomain.InvoiceItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = invoicedomain.InvoiceItem{
				ID:          s.genID.Generate(),
				InvoiceID:   invoiceID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				LineTotal:   totals.LineTotals[i],
				VATRate:     totals.VATRates[i],
				CreatedAt:   now,
			}
		}

		invoice := invoicedomain.Invoice{
			ID:                invoiceID,
			SupplierID:        supplierID,
			CustomerID:        customerID,
			InvoiceNumber:     invoiceNumber,
			ClientName:        req.ClientName,
			ClientStreet:      req.ClientStreet,
			ClientCity:        req.ClientCity,
			ClientZipCode:     req.ClientZipCode,
			ClientCountry:     clientCountry,
			IssueDate:         req.IssueDate,
			DueDate:           req.DueDate,
			TaxableSupplyDate: req.TaxableSupplyDate,
			Description:       req.Description,
			Subtotal:          totals.Subtotal,
			VATAmount:         totals.VATAmount,
			Total:             totals.Total,
			IsReverseCharge:   req.IsReverseCharge,
			Items:             items,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		created = invoice
		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidActor
	}

	supplier, err := s.supplierrepo.FindOne(ctx, &supplierdomain.Supplier{UserID: userID})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if supplier == nil {
		return invoicedomain.Invoice{}, supplierdomain.ErrProfileMissing
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}

	var invoice invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Items").
		Where(&invoicedomain.Invoice{ID: invoiceID, SupplierID: supplier.ID}).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
		}
		return invoicedomain.Invoice{}, err
	}

	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.Invoice, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, invoicedomain.ErrInvalidActor
	}

	supplier, err := s.supplierrepo.FindOne(ctx, &supplierdomain.Supplier{UserID: userID})
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, supplierdomain.ErrProfileMissing
	}

	items, err := s.invoicerepo.Find(ctx, &invoicedomain.Invoice{SupplierID: supplier.ID},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"created_at": true}, Field: "created_at", Desc: true}),
	)
	if err != nil {
		return nil, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return invoices, nil
}

func validateCreate(req invoicedomain.CreateInvoiceRequest) error {
	verr := &invoicedomain.ValidationError{}

	if strings.TrimSpace(req.ClientName) == "" {
		verr.Add("client_name", "required", "client name is required")
	}
	if strings.TrimSpace(req.ClientStreet) == "" {
		verr.Add("client_street", "required", "client street is required")
	}
	if strings.TrimSpace(req.ClientCity) == "" {
		verr.Add("client_city", "required", "client city is required")
	}
	if strings.TrimSpace(req.ClientZipCode) == "" {
		verr.Add("client_zip_code", "required", "client zip code is required")
	}
	if req.IssueDate.IsZero() {
		verr.Add("issue_date", "required", "issue date is required")
	}
	if req.DueDate.IsZero() {
		verr.Add("due_date", "required", "due date is required")
	}
	if len(req.Items) == 0 {
		verr.Add("items", "required", "at least one item is required")
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Description) == "" {
			verr.Add(fmt.Sprintf("items[%d].description", i), "required", "description is required")
		}
	}
	verr.Fields = append(verr.Fields, calc.ValidateItems(req.Items)...)

	return verr.OrNil()
}
