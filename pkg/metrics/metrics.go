// Package metrics defines and registers all custom Prometheus metrics for the
// Reflectify API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Collectors are registered with the default Prometheus registry on package
// initialisation via promauto and served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reflectify"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts session lifecycle outcomes.
// Labels:
//   - action: "register", "login" or "logout"
//   - result: "success", "failure" or "already_revoked"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of register, login and logout attempts, by result.",
	},
	[]string{"action", "result"},
)

// GuardRejectionsTotal counts requests refused by the session guard.
// Label:
//   - reason: "no_token", "revoked", "expired", "invalid", "user_not_found" or "error"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the session guard, by reason.",
	},
	[]string{"reason"},
)

// ── Analysis metrics ──────────────────────────────────────────────────────────

// AnalysisRequestsTotal counts generation calls to the text provider.
// Labels:
//   - profile: "emotion" or "expense"
//   - result: "success" or "error"
var AnalysisRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_requests_total",
		Help:      "Total number of text generation requests, by profile and result.",
	},
	[]string{"profile", "result"},
)

// AnalysisRetriesTotal counts retried provider calls.
// Label:
//   - profile: "emotion" or "expense"
var AnalysisRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_retries_total",
		Help:      "Total number of provider calls that were retried after a failure.",
	},
	[]string{"profile"},
)

// AnalysisDuration measures a generation end-to-end, retries included.
// Label:
//   - profile: "emotion" or "expense"
var AnalysisDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of text generation requests including retries.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	},
	[]string{"profile"},
)

// UnscoredReportsTotal counts emotion analyses rejected for lacking a numeric score.
var UnscoredReportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unscored_reports_total",
		Help:      "Total number of emotion analyses discarded because no numeric score was found.",
	},
)
