package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quantum_oracle_client"

// ── Poll cycles ────────────────────────────────────────────────────────

var (
	PollCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "poll",
		Name:      "cycles_total",
		Help:      "Poll cycles by outcome (ok, failed, discarded).",
	}, []string{"status"})

	PollCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "poll",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of a poll cycle in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})

	PollTicksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "poll",
		Name:      "ticks_dropped_total",
		Help:      "Ticks skipped because a cycle was still in flight.",
	})

	PollLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "poll",
		Name:      "last_success_timestamp",
		Help:      "Unix timestamp of the last published snapshot.",
	})

	AssetFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "poll",
		Name:      "asset_failures_total",
		Help:      "Per-asset fetch failures replaced by a zero value.",
	}, []string{"symbol"})
)

// ── Connection and prices ──────────────────────────────────────────────

var (
	ConnectionState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "connection",
		Name:      "state",
		Help:      "1 for the current connection state, 0 otherwise.",
	}, []string{"state"})

	ConnectAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "connection",
		Name:      "attempts_total",
		Help:      "Connect attempts by outcome.",
	}, []string{"outcome"})

	PriceValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "oracle",
		Name:      "price",
		Help:      "Latest normalised price per symbol.",
	}, []string{"symbol"})
)

// ── Notifications ──────────────────────────────────────────────────────

var (
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "total",
		Help:      "Notifications by sink and outcome.",
	}, []string{"sink", "outcome"})
)

// SetConnectionState flags state as current and clears the others.
func SetConnectionState(state string, all []string) {
	for _, s := range all {
		v := 0.0
		if s == state {
			v = 1
		}
		ConnectionState.WithLabelValues(s).Set(v)
	}
}
