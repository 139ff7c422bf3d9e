package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics the client exposes. Hosts that embed
// the client can register the default registry with their own scrape surface.
type Metrics struct {
	GatewayRequests     *prometheus.CounterVec
	GatewayFailures     prometheus.Counter
	RehydrationOutcomes *prometheus.CounterVec
	UploadsCompleted    *prometheus.CounterVec
}

// New creates and registers all client metrics on a fresh registry-backed set
// of collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GatewayRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caselink_gateway_requests_total",
			Help: "Total API requests issued through the gateway, by method and outcome.",
		}, []string{"method", "outcome"}),
		GatewayFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "caselink_gateway_failures_total",
			Help: "Total gateway requests that resolved to the failure sentinel.",
		}),
		RehydrationOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caselink_session_rehydrations_total",
			Help: "Session rehydration attempts, by outcome (restored, skipped, none).",
		}, []string{"outcome"}),
		UploadsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "caselink_document_uploads_total",
			Help: "Individual document uploads that settled, by outcome.",
		}, []string{"outcome"}),
	}
}

// NewNop returns metrics registered on a throwaway registry, for tests and
// hosts that do not scrape.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
