package client

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts pipeline calls by method and outcome and records their
// latency. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the pipeline metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "campaignkeeper_api_requests_total",
			Help: "API calls by HTTP method and outcome (status class or failure kind)",
		}, []string{"method", "outcome"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campaignkeeper_api_request_duration_seconds",
			Help:    "API call latency including body read",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
	}
}

func (m *Metrics) observe(method string, status int, err error, start time.Time) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, outcome(status, err)).Inc()
	m.Duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// outcome is "2xx", "4xx", "5xx" for answered calls and the failure kind
// otherwise.
func outcome(status int, err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind != KindServer {
		return apiErr.Kind.String()
	}
	if status == 0 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
