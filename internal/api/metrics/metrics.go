// Package metrics defines and registers all custom Prometheus metrics
// for the inventory gateway. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time
// via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayOperationsTotal counts gateway operations that completed.
// Labels:
//   - operation: insert, conditional_insert, select, delete, procedure_call
//   - table: the validated table identifier (allow-listed, bounded cardinality)
var GatewayOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_operations_total",
		Help:      "Total number of query gateway operations executed, by kind and table.",
	},
	[]string{"operation", "table"},
)

// GatewayErrorsTotal counts gateway operations that failed.
// Label:
//   - reason: "unknown_table", "database", "not_found"
var GatewayErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_errors_total",
		Help:      "Total number of query gateway operations that failed.",
	},
	[]string{"reason"},
)

// QueryDuration measures one gateway call end-to-end, including
// connection checkout and result draining.
var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Duration of gateway calls from dispatch to result.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected requests at the admission point.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_token",
//     "bad_credentials"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication rejections, by reason.",
	},
	[]string{"reason"},
)

// SessionsCreatedTotal counts successful logins.
var SessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions opened by successful logins.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
