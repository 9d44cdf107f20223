package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	supplierdomain "github.com/fakturio/fakturio/internal/supplier/domain"
	"github.com/fakturio/fakturio/internal/userctx"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (supplierdomain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&supplierdomain.Supplier{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node}), node
}

func validProfile() supplierdomain.UpsertSupplierRequest {
	return supplierdomain.UpsertSupplierRequest{
		Name:    "Test Company s.r.o.",
		Street:  "Dlouhá 1",
		City:    "Praha",
		ZipCode: "11000",
	}
}

func TestUpsert_CreatesThenUpdates(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userctx.WithUserID(context.Background(), node.Generate())

	created, err := svc.Upsert(ctx, validProfile())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Czech Republic", created.Country)

	req := validProfile()
	req.City = "Brno"
	updated, err := svc.Upsert(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Brno", updated.City)

	got, err := svc.GetByActor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Brno", got.City)
}

func TestUpsert_RejectsIncompleteProfile(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userctx.WithUserID(context.Background(), node.Generate())

	req := validProfile()
	req.Name = "  "
	_, err := svc.Upsert(ctx, req)
	assert.ErrorIs(t, err, supplierdomain.ErrInvalidProfile)
}

func TestGetByActor_MissingProfile(t *testing.T) {
	svc, node := newTestService(t)
	ctx := userctx.WithUserID(context.Background(), node.Generate())

	_, err := svc.GetByActor(ctx)
	assert.ErrorIs(t, err, supplierdomain.ErrProfileMissing)
}

func TestGetByActor_RequiresActor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByActor(context.Background())
	assert.ErrorIs(t, err, supplierdomain.ErrInvalidActor)
}

func TestRegistrationText(t *testing.T) {
	commercial := supplierdomain.RegistrationCommercialRegister
	court := "Městským soudem v Praze"
	file := "C 12345"

	s := supplierdomain.Supplier{
		RegistrationType:       &commercial,
		RegistrationCourt:      &court,
		RegistrationFileNumber: &file,
	}
	text := s.RegistrationText()
	require.NotNil(t, text)
	assert.Contains(t, *text, "obchodním rejstříku")
	assert.Contains(t, *text, court)

	none := supplierdomain.RegistrationNone
	s = supplierdomain.Supplier{RegistrationType: &none}
	text = s.RegistrationText()
	require.NotNil(t, text)
	assert.Equal(t, "Není zapsán v obchodním rejstříku", *text)

	s = supplierdomain.Supplier{}
	assert.Nil(t, s.RegistrationText())
}
