package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/fakturio/fakturio/internal/customer/domain"
	"github.com/fakturio/fakturio/internal/userctx"
	"github.com/fakturio/fakturio/pkg/db/option"
	"github.com/fakturio/fakturio/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID        *snowflake.Node
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,

		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return customerdomain.Customer{}, customerdomain.ErrInvalidActor
	}

	if strings.TrimSpace(req.Name) == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidCustomer
	}

	now := time.Now().UTC()
	customer := customerdomain.Customer{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		Street:    strings.TrimSpace(req.Street),
		City:      strings.TrimSpace(req.City),
		ZipCode:   strings.TrimSpace(req.ZipCode),
		Country:   strings.TrimSpace(req.Country),
		ICO:       req.ICO,
		DIC:       req.DIC,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if customer.Country == "" {
		customer.Country = "Czech Republic"
	}

	if err := s.customerrepo.Create(ctx, &customer); err != nil {
		return customerdomain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]customerdomain.Customer, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, customerdomain.ErrInvalidActor
	}

	items, err := s.customerrepo.Find(ctx, &customerdomain.Customer{UserID: userID},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"created_at": true}}),
	)
	if err != nil {
		return nil, err
	}

	customers := make([]customerdomain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return customers, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (customerdomain.Customer, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return customerdomain.Customer{}, customerdomain.ErrInvalidActor
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return customerdomain.Customer{}, customerdomain.ErrNotFound
	}

	item, err := s.customerrepo.FindOne(ctx, &customerdomain.Customer{ID: customerID, UserID: userID})
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if item == nil {
		return customerdomain.Customer{}, customerdomain.ErrNotFound
	}
	return *item, nil
}
