// Package metrics exposes Prometheus collectors for upstream traffic. The
// collectors are package-level so the rezdy client can observe without
// carrying a registry around.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rezdylink_upstream_requests_total",
		Help: "Upstream Rezdy API requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rezdylink_upstream_request_seconds",
		Help:    "Upstream Rezdy API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// ObserveUpstream records one upstream call. A zero status means the request
// never reached the upstream (transport failure).
func ObserveUpstream(method, path string, status int, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	upstreamDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
