package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/fakturio/fakturio/internal/config"
	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	"github.com/fakturio/fakturio/internal/userctx"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvoiceService struct {
	created   invoicedomain.Invoice
	createErr error
	gotActor  snowflake.ID
}

func (f *fakeInvoiceService) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	f.gotActor, _ = userctx.UserIDFromContext(ctx)
	return f.created, f.createErr
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	if id != f.created.ID.String() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}
	return f.created, nil
}

func (f *fakeInvoiceService) List(ctx context.Context) ([]invoicedomain.Invoice, error) {
	return []invoicedomain.Invoice{f.created}, nil
}

func (f *fakeInvoiceService) PaymentQR(ctx context.Context, id string) (invoicedomain.PaymentQR, error) {
	return invoicedomain.PaymentQR{Available: false}, nil
}

func newTestServer(t *testing.T, invoiceSvc invoicedomain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := NewEngine(zap.NewNop())
	NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{Environment: "test"},
		InvoiceSvc: invoiceSvc,
	})
	return engine
}

func TestCreateInvoice_RequiresActorHeader(t *testing.T) {
	engine := newTestServer(t, &fakeInvoiceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateInvoice_ReturnsFormattedNumber(t *testing.T) {
	fake := &fakeInvoiceService{
		created: invoicedomain.Invoice{
			ID:            snowflake.ID(42),
			InvoiceNumber: 2503150001,
		},
	}
	engine := newTestServer(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString(`{"client_name":"A"}`))
	req.Header.Set(HeaderUser, "123456789")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, snowflake.ID(123456789), fake.gotActor)

	var body struct {
		Data struct {
			InvoiceNumber   int64  `json:"invoice_number"`
			FormattedNumber string `json:"formatted_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2503150001), body.Data.InvoiceNumber)
	assert.Equal(t, "2503150001", body.Data.FormattedNumber)
}

func TestCreateInvoice_ValidationErrorListsFields(t *testing.T) {
	verr := &invoicedomain.ValidationError{}
	verr.Add("client_name", "required", "client name is required")
	verr.Add("items[0].quantity", "invalid_quantity", "quantity must be positive")
	engine := newTestServer(t, &fakeInvoiceService{createErr: verr})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString(`{}`))
	req.Header.Set(HeaderUser, "123456789")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Type   string                     `json:"type"`
			Errors []invoicedomain.FieldError `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
	assert.Len(t, body.Error.Errors, 2)
}

func TestCreateInvoice_ConflictExhausted(t *testing.T) {
	engine := newTestServer(t, &fakeInvoiceService{createErr: invoicedomain.ErrNumberConflictExhausted})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString(`{"client_name":"A"}`))
	req.Header.Set(HeaderUser, "123456789")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetInvoiceByID_InvalidID(t *testing.T) {
	engine := newTestServer(t, &fakeInvoiceService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/not-a-number", nil)
	req.Header.Set(HeaderUser, "123456789")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetInvoiceByID_NotFound(t *testing.T) {
	engine := newTestServer(t, &fakeInvoiceService{created: invoicedomain.Invoice{ID: snowflake.ID(42)}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/43", nil)
	req.Header.Set(HeaderUser, "123456789")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentQR_UnavailableIsOK(t *testing.T) {
	engine := newTestServer(t, &fakeInvoiceService{created: invoicedomain.Invoice{ID: snowflake.ID(42)}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/42/payment-qr", nil)
	req.Header.Set(HeaderUser, "123456789")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data invoicedomain.PaymentQR `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Data.Available)
}
