// Package metrics defines and registers all custom Prometheus metrics for
// the admin console gateway. It is the single source of truth for metric
// names, labels, and help strings. promauto registers everything with the
// default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Backend call metrics ──────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the remote backend.
// Labels:
//   - resource: the backend resource group ("auth", "users", "roles", "permissions")
//   - operation: the call within the group (e.g. "get_all", "update")
//   - status: response status class ("2xx".."5xx") or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of calls issued to the remote backend.",
	},
	[]string{"resource", "operation", "status"},
)

// BackendRequestDuration measures how long a backend call takes end-to-end.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of calls to the remote backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"resource", "operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionExpiriesTotal counts 401 replies that tore the session down.
var SessionExpiriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expiries_total",
		Help:      "Total number of sessions ended by a 401 backend reply.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreErrorsTotal counts store operations that surfaced an error to the
// view layer.
// Labels:
//   - store: "auth" or "admin"
//   - operation: the store operation (e.g. "fetch_users", "delete_role")
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of store operations that ended in an error.",
	},
	[]string{"store", "operation"},
)
