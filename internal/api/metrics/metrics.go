// Package metrics defines and registers all custom Prometheus metrics for the
// identity API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts login attempts by resolved principal kind and outcome.
// Labels:
//   - kind: "teammate", "client", or "none" when no principal resolved
//   - result: "ok", "invalid_credentials", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

// TokenResolutionsTotal counts access-token resolutions performed by the auth
// middleware.
// Label:
//   - result: "ok" or "invalid"
var TokenResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_resolutions_total",
		Help:      "Total number of access token resolutions, by result.",
	},
	[]string{"result"},
)

// RefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "ok" or "invalid"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token exchanges, by result.",
	},
	[]string{"result"},
)

// ServiceAuthTotal counts service-channel authentication decisions.
// Label:
//   - result: "ok", "missing_header", "invalid_token", "expired", "disallowed_service"
var ServiceAuthTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_auth_total",
		Help:      "Total number of internal service-channel authentication decisions.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of audit events waiting in each
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
