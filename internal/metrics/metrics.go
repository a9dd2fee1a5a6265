package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the collectors of the dashboard service.
// A nil registerer yields working but unregistered collectors.
type Metrics struct {
	Actions          *prometheus.CounterVec
	RefreshFailures  *prometheus.CounterVec
	ConfirmationTime prometheus.Histogram
	SessionConnected prometheus.Gauge
}

// New creates the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votechain_actions_total",
			Help: "mutating actions by action and result",
		}, []string{"action", "result"}),
		RefreshFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votechain_refresh_failures_total",
			Help: "failed view refreshes by category",
		}, []string{"category"}),
		ConfirmationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "votechain_confirmation_seconds",
			Help:    "time from submission to inclusion of a transaction",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		}),
		SessionConnected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "votechain_session_connected",
			Help: "whether a wallet session is active (0 or 1)",
		}),
	}
}

// ActionDone counts one finished action
func (m *Metrics) ActionDone(action string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.Actions.WithLabelValues(action, result).Inc()
}
