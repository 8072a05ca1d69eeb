package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal    *prometheus.CounterVec
	accessDecisionsTotal *prometheus.CounterVec
	registerOnce         sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reportdesk",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the API.",
		}, []string{"method", "route", "status"})

		accessDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reportdesk",
			Name:      "access_decisions_total",
			Help:      "Access checks evaluated, by resource kind, action and result.",
		}, []string{"kind", "action", "result"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, route string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// IncAccessDecision counts one access check.
func IncAccessDecision(kind, action, result string) {
	if accessDecisionsTotal == nil {
		return
	}
	accessDecisionsTotal.WithLabelValues(kind, action, result).Inc()
}
