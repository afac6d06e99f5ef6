package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrdesk",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Calls made to the HR API broken down by method and result.",
	}, []string{"method", "result"})

	gatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hrdesk",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution of calls made to the HR API.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "result"})
)

const (
	resultOK         = "ok"
	resultHTTPError  = "http_error"
	resultTransport  = "transport_error"
	resultDecodeFail = "decode_error"
)

func recordCall(method, result string, elapsed time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"result": result,
	}
	gatewayRequests.With(labels).Inc()
	gatewayLatency.With(labels).Observe(elapsed.Seconds())
}
