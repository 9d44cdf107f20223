package service

import (
	"context"
	"strconv"
	"strings"

	invoicedomain "github.com/fakturio/fakturio/internal/invoice/domain"
	"github.com/fakturio/fakturio/internal/spayd"
	supplierdomain "github.com/fakturio/fakturio/internal/supplier/domain"
	"github.com/fakturio/fakturio/internal/userctx"
	"go.uber.org/zap"
)

// PaymentQR builds the payment descriptor and QR image for an issued invoice.
// A supplier without a usable bank account gets Available=false rather than
// an error; the invoice itself is always retrievable.
func (s *Service) PaymentQR(ctx context.Context, id string) (invoicedomain.PaymentQR, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return invoicedomain.PaymentQR{}, invoicedomain.ErrInvalidActor
	}

	supplier, err := s.supplierrepo.FindOne(ctx, &supplierdomain.Supplier{UserID: userID})
	if err != nil {
		return invoicedomain.PaymentQR{}, err
	}
	if supplier == nil {
		return invoicedomain.PaymentQR{}, supplierdomain.ErrProfileMissing
	}

	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return invoicedomain.PaymentQR{}, err
	}

	account := ""
	if supplier.BankAccount != nil {
		account = *supplier.BankAccount
	}
	iban, ok := s.resolveIBAN(account)
	if !ok {
		s.log.Warn("supplier bank account not usable for payment qr",
			zap.String("supplier_id", supplier.ID.String()),
		)
		return invoicedomain.PaymentQR{Available: false}, nil
	}

	cfg := s.issuance.Get()
	opts := spayd.Options{
		IBAN:           iban,
		Amount:         invoice.Total,
		Currency:       cfg.Currency,
		Message:        invoice.ClientName,
		VariableSymbol: strconv.FormatInt(invoice.InvoiceNumber, 10),
		RecipientName:  supplier.Name,
	}

	payload, err := spayd.Encode(opts)
	if err != nil {
		s.log.Warn("payment descriptor rejected",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
		return invoicedomain.PaymentQR{Available: false}, nil
	}

	dataURI, err := spayd.EncodeQR(opts, cfg.QRSize)
	if err != nil {
		s.log.Warn("qr rendering failed",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
		return invoicedomain.PaymentQR{Available: true, SPAYD: payload}, nil
	}

	return invoicedomain.PaymentQR{Available: true, SPAYD: payload, QRDataURI: dataURI}, nil
}

// resolveIBAN accepts either a full IBAN or the legacy
// "prefix-number/bankCode" account notation.
func (s *Service) resolveIBAN(account string) (string, bool) {
	account = strings.TrimSpace(account)
	if account == "" {
		return "", false
	}
	if spayd.IsValidIBAN(account) {
		return spayd.NormalizeIBAN(account), true
	}
	return spayd.ParseAccountString(account)
}
