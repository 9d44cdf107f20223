package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	"github.com/fakturio/fakturio/internal/invoice/number"
	"github.com/gin-gonic/gin"
)

type invoiceResponse struct {
	invoicedomain.Invoice
	FormattedNumber string `json:"formatted_number"`
}

func presentInvoice(inv invoicedomain.Invoice) invoiceResponse {
	return invoiceResponse{
		Invoice:         inv,
		FormattedNumber: number.FormatNumber(inv.InvoiceNumber),
	}
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	inv, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": presentInvoice(inv)})
}

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, presentInvoice(inv))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": presentInvoice(inv)})
}

func (s *Server) GetInvoicePaymentQR(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := snowflake.ParseString(id); err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	qr, err := s.invoiceSvc.PaymentQR(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": qr})
}
