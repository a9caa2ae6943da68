package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(contentRequestsTotal) }

var contentRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quran_content_requests_total",
		Help: "Total content provider requests, labeled by endpoint and outcome.",
	},
	[]string{"endpoint", "status"}, // endpoint: 'verse', 'translation', 'tafsir'; status: 'ok', 'error', 'cached'
)

func IncContentRequest(endpoint, status string) {
	contentRequestsTotal.WithLabelValues(norm(endpoint), norm(status)).Inc()
}
