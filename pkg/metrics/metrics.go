// Package metrics provides the centralized Prometheus registry reference for
// the on-call hours tooling. All metrics are defined in their respective
// packages (client, pagination) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the library.
// All metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - oncall_api_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - oncall_api_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - oncall_api_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Pagination Metrics (pkg/pagination):
//   - oncall_pages_fetched_total (Counter): Pages fetched across all windows
//   - oncall_records_fetched_total (Counter): On-call records fetched
//   - oncall_windows_fetched_total (Counter): Windows fetched, including single-window ranges
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(oncall_api_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(oncall_api_request_duration_seconds_bucket[5m]))
//
//   # Average Pages per Window
//   rate(oncall_pages_fetched_total[5m]) / rate(oncall_windows_fetched_total[5m])
