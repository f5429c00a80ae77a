// Package metrics defines all custom Prometheus metrics for the AICV
// generation API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aicv"

// GenerationsTotal counts generation requests by final outcome.
// Labels:
//   - lang: the normalized language selector ("es", "en", "auto")
//   - outcome: "success", "invalid_request", "quota_exhausted",
//     "upstream_error", "store_error"
var GenerationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Total number of CV generation requests, by language and outcome.",
	},
	[]string{"lang", "outcome"},
)

// QuotaDeniedTotal counts requests rejected for lack of credits.
// Label:
//   - stage: "precheck" (balance was zero before the upstream call) or
//     "commit" (a concurrent request consumed the last credit first)
var QuotaDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_denied_total",
		Help:      "Total number of generation requests denied by the quota ledger.",
	},
	[]string{"stage"},
)

// UpstreamErrorsTotal counts failed upstream generation calls.
// Label:
//   - reason: "unavailable" (call failed) or "malformed" (reply had no
//     decodable JSON object)
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Total number of failed calls to the generative-language service.",
	},
	[]string{"reason"},
)

// RateLimitedTotal counts generate calls rejected by the per-account limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of generation requests rejected by the rate limiter.",
	},
)

// GenerationDuration measures end-to-end handler latency of generate calls.
// Label:
//   - outcome: "success" or "error"
var GenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of generation requests including the upstream call.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	},
	[]string{"outcome"},
)
