package server

import (
	"errors"
	"net/http"

	customerdomain "github.com/fakturio/fakturio/internal/customer/domain"
	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	supplierdomain "github.com/fakturio/fakturio/internal/supplier/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string                     `json:"type"`
	Message string                     `json:"message"`
	Errors  []invoicedomain.FieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	verr := &invoicedomain.ValidationError{}
	return verr.Add(field, code, message)
}

func mapError(err error) (int, errorPayload) {
	var verr *invoicedomain.ValidationError
	if errors.As(err, &verr) && verr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  verr.Fields,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, invoicedomain.ErrInvalidActor),
		errors.Is(err, supplierdomain.ErrInvalidActor),
		errors.Is(err, customerdomain.ErrInvalidActor):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, supplierdomain.ErrInvalidProfile),
		errors.Is(err, customerdomain.ErrInvalidCustomer):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: "invalid request",
		}
	case errors.Is(err, supplierdomain.ErrProfileMissing):
		return http.StatusPreconditionFailed, errorPayload{
			Type:    "supplier_profile_missing",
			Message: "supplier profile is not configured",
		}
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, invoicedomain.ErrSequenceExhausted):
		return http.StatusConflict, errorPayload{
			Type:    "sequence_exhausted",
			Message: "daily invoice sequence exhausted",
		}
	case errors.Is(err, invoicedomain.ErrNumberConflictExhausted):
		return http.StatusConflict, errorPayload{
			Type:    "number_conflict",
			Message: "invoice number allocation kept conflicting, retry the request",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
