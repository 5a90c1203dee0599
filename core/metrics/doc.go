// Package metrics exposes Prometheus metrics for the reconciliation service.
//
// Metrics are registered on an injected prometheus.Registerer so tests can use
// private registries. The start command serves the default registry at /metrics.
package metrics
