package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	supplierdomain "github.com/fakturio/fakturio/internal/supplier/domain"
	"github.com/fakturio/fakturio/internal/userctx"
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
	supplierrepo repository.Repository[supplierdomain.Supplier]
}

func NewService(p ServiceParam) supplierdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("supplier.service"),
		genID: p.GenID,

		supplierrepo: repository.ProvideStore[supplierdomain.Supplier](p.DB),
	}
}

func (s *Service) GetByActor(ctx context.Context) (supplierdomain.Supplier, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return supplierdomain.Supplier{}, supplierdomain.ErrInvalidActor
	}

	item, err := s.supplierrepo.FindOne(ctx, &supplierdomain.Supplier{UserID: userID})
	if err != nil {
		return supplierdomain.Supplier{}, err
	}
	if item == nil {
		return supplierdomain.Supplier{}, supplierdomain.ErrProfileMissing
	}

	return *item, nil
}

func (s *Service) Upsert(ctx context.Context, req supplierdomain.UpsertSupplierRequest) (supplierdomain.Supplier, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return supplierdomain.Supplier{}, supplierdomain.ErrInvalidActor
	}

	if err := validateUpsert(req); err != nil {
		return supplierdomain.Supplier{}, err
	}

	existing, err := s.supplierrepo.FindOne(ctx, &supplierdomain.Supplier{UserID: userID})
	if err != nil {
		return supplierdomain.Supplier{}, err
	}

	now := time.Now().UTC()
	profile := supplierdomain.Supplier{
		UserID:                 userID,
		Name:                   strings.TrimSpace(req.Name),
		Street:                 strings.TrimSpace(req.Street),
		City:                   strings.TrimSpace(req.City),
		ZipCode:                strings.TrimSpace(req.ZipCode),
		Country:                strings.TrimSpace(req.Country),
		ICO:                    req.ICO,
		DIC:                    req.DIC,
		BankAccount:            req.BankAccount,
		IsNonVATPayer:          req.IsNonVATPayer,
		RegistrationType:       req.RegistrationType,
		RegistrationCourt:      req.RegistrationCourt,
		RegistrationFileNumber: req.RegistrationFileNumber,
		UpdatedAt:              now,
	}
	if profile.Country == "" {
		profile.Country = "Czech Republic"
	}

	if existing == nil {
		profile.ID = s.genID.Generate()
		profile.CreatedAt = now
		if err := s.supplierrepo.Create(ctx, &profile); err != nil {
			return supplierdomain.Supplier{}, err
		}
		s.log.Info("supplier profile created", zap.String("supplier_id", profile.ID.String()))
		return profile, nil
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return supplierdomain.Supplier{}, err
	}
	return profile, nil
}

func validateUpsert(req supplierdomain.UpsertSupplierRequest) error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Street) == "" ||
		strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.ZipCode) == "" {
		return supplierdomain.ErrInvalidProfile
	}
	return nil
}
