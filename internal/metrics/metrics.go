package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "athletetrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, labeled by method and status code.",
	}, []string{"method", "status"})

	dashboardsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "athletetrack",
		Subsystem: "stats",
		Name:      "dashboards_computed_total",
		Help:      "Dashboard computations completed, labeled by scope (athlete or admin).",
	}, []string{"scope"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, dashboardsComputedTotal)
}

// RecordRequest counts one handled HTTP request.
func RecordRequest(method string, status int) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// RecordDashboard counts one completed dashboard computation.
func RecordDashboard(scope string) {
	dashboardsComputedTotal.WithLabelValues(scope).Inc()
}
