package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Reconciliation metrics
	CalculationsTotal        prometheus.Counter
	CalculationErrors        *prometheus.CounterVec
	DegradedRateCalculations prometheus.Counter
	CalculationDuration      prometheus.Histogram

	// Batch metrics
	BatchRunsTotal         prometheus.Counter
	BatchSessionsProcessed prometheus.Counter

	// Gateway metrics
	GatewayRequests *prometheus.CounterVec
	GatewayRetries  prometheus.Counter
	CoercedAmounts  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CalculationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajarecon_calculations_total",
			Help: "Total number of discrepancy calculations completed",
		}),
		CalculationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cajarecon_calculation_errors_total",
				Help: "Total number of failed calculations by error class",
			},
			[]string{"error_class"},
		),
		DegradedRateCalculations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajarecon_degraded_rate_calculations_total",
			Help: "Calculations completed with a zero fallback exchange rate",
		}),
		CalculationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cajarecon_calculation_duration_seconds",
			Help:    "Duration of discrepancy calculations",
			Buckets: prometheus.DefBuckets,
		}),

		BatchRunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajarecon_batch_runs_total",
			Help: "Total number of batch reconciliation runs",
		}),
		BatchSessionsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajarecon_batch_sessions_processed_total",
			Help: "Total number of sessions processed inside batch runs",
		}),

		GatewayRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cajarecon_gateway_requests_total",
				Help: "Upstream core API requests by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		GatewayRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajarecon_gateway_retries_total",
			Help: "Upstream core API request retries",
		}),
		CoercedAmounts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cajarecon_coerced_amounts_total",
			Help: "Malformed numeric fields coerced to zero while decoding",
		}),
	}
}
