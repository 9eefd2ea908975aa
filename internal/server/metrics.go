package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts engine and renderer activity.
type Metrics struct {
	Calculations   *prometheus.CounterVec
	InvoicesIssued prometheus.Counter
	RenderFailures prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		Calculations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxara_calculations_total",
			Help: "Tax calculations by transaction type.",
		}, []string{"transaction_type"}),
		InvoicesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxara_invoices_issued_total",
			Help: "Invoices issued with an authoritative number.",
		}),
		RenderFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxara_render_failures_total",
			Help: "Invoice document renders that failed.",
		}),
	}
}
