// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SaleDerivations counts interview saves by what the outcome rule did:
	// created, none or failed.
	SaleDerivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "sale_derivations_total",
		Help:      "Interview outcome evaluations by result.",
	}, []string{"result"})

	SalesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "sales_written_total",
		Help:      "Sales created, replaced or deleted through the API.",
	}, []string{"op"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "events_published_total",
		Help:      "Domain events handed to a publisher.",
	}, []string{"sink", "type"})
)
