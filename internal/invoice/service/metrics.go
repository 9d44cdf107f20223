package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	issuanceAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fakturio_invoice_issuance_attempts_total",
		Help: "Invoice persistence attempts, including retried ones.",
	})

	issuanceConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fakturio_invoice_number_conflicts_total",
		Help: "Invoice number collisions detected by the unique constraint.",
	})

	issuanceExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fakturio_invoice_issuance_exhausted_total",
		Help: "Invoice creations abandoned after exhausting retries.",
	})
)
