package weaviate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer records request counts and latencies per client operation.
// A nil *Observer is valid and records nothing.
type Observer struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewObserver registers the client metrics on the given registerer and returns
// the observer. Pass prometheus.DefaultRegisterer for the process-global
// registry.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weaviate",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total requests issued by the Weaviate client, by operation and status.",
		}, []string{"operation", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weaviate",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Request latency of the Weaviate client, by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(o.requestsTotal, o.requestDuration)
	return o
}

// ObserveOperation records one finished operation.
func (o *Observer) ObserveOperation(operation string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.requestsTotal.WithLabelValues(operation, status).Inc()
	o.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
