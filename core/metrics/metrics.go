package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for reconciliation.
// Tracks events by operation and outcome, created entities and durations.
type Metrics struct {
	Events          *prometheus.CounterVec
	ProductsCreated prometheus.Counter
	LotsCreated     prometheus.Counter
	LotsRemoved     prometheus.Counter
	Duration        *prometheus.HistogramVec
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_reconcile_events_total",
			Help: "Total number of reconciliation events by operation and outcome",
		}, []string{"operation", "outcome"}),
		ProductsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "stock_products_created_total",
			Help: "Total number of products added to the catalog",
		}),
		LotsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "stock_lots_created_total",
			Help: "Total number of stock lots added to the ledger",
		}),
		LotsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "stock_lots_removed_total",
			Help: "Total number of stock lots removed after reaching zero",
		}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stock_reconcile_duration_seconds",
			Help:    "Duration of load-reconcile-save cycles",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// ObserveEvent records one reconciliation event.
func (m *Metrics) ObserveEvent(operation, outcome string) {
	m.Events.WithLabelValues(operation, outcome).Inc()
}

// ObserveChanges records created and removed entities of one cycle.
func (m *Metrics) ObserveChanges(productsCreated, lotsCreated, lotsRemoved int) {
	m.ProductsCreated.Add(float64(productsCreated))
	m.LotsCreated.Add(float64(lotsCreated))
	m.LotsRemoved.Add(float64(lotsRemoved))
}

// ObserveDuration records the duration of an operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveDuration(operation string, start time.Time) {
	m.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
