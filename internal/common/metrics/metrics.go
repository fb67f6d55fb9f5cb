// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoringAttemptsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_attempts_completed_total",
			Help: "Total number of scoring orchestrations applied successfully",
		},
		[]string{"service"},
	)

	ScoringAttemptsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_attempts_failed_total",
			Help: "Total number of scoring orchestrations that ended rejected or failed",
		},
		[]string{"service", "error_code"},
	)

	ScoringAttemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scoring_attempt_duration_seconds",
			Help: "Duration of scoring orchestrations in seconds",
		},
		[]string{"service"},
	)

	ScoringAttemptsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scoring_attempts_active",
			Help: "Number of scoring orchestrations in flight",
		},
		[]string{"service"},
	)

	JudgmentsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judgments_issued_total",
			Help: "Total number of per-criterion judgments by outcome",
		},
		[]string{"area", "outcome"},
	)
)
