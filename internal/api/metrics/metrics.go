// Package metrics defines the custom Prometheus metrics for the inventory
// API. It is the single source of truth for metric names, labels, and help
// strings; collectors register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts bearer tokens minted by successful logins.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// RoleAssignmentsTotal counts successful role assignments (idempotent
// replays included).
var RoleAssignmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of successful role assignments.",
	},
)

// UploadsTotal counts image upload attempts.
// Label:
//   - result: "success", "rejected" (client error), or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image upload attempts, labelled by result.",
	},
	[]string{"result"},
)

// UploadBytes measures the size of successfully stored uploads.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size distribution of stored uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB … 16MiB
	},
)
