package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(dailyDeliveriesTotal, dailyRunDuration) }

var dailyDeliveriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quran_daily_deliveries_total",
		Help: "Total daily verse delivery attempts, labeled by chat kind and status.",
	},
	[]string{"kind", "status"}, // 'sent', 'failed'
)

var dailyRunDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "quran_daily_run_duration_seconds",
		Help:    "Duration of a full daily fan-out run.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	},
)

func IncDelivery(kind, status string) {
	dailyDeliveriesTotal.WithLabelValues(norm(kind), norm(status)).Inc()
}

func ObserveDailyRun(seconds float64) {
	dailyRunDuration.Observe(seconds)
}
