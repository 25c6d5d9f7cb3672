package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	liveRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_live_refresh_total",
		Help: "Live value refreshes by result",
	}, []string{"result"})

	liveRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_live_refresh_duration_seconds",
		Help:    "Duration of live value refreshes",
		Buckets: prometheus.DefBuckets,
	})

	liveValuesKnown = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_live_values_known",
		Help: "Number of codes in the last good live value snapshot",
	})

	editorSessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_editor_sessions_swept_total",
		Help: "Idle editor sessions dropped from the in-memory store",
	})

	rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"path"})
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, path, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

// ObserveLiveRefresh records a resolver poll. known is only meaningful on success.
func ObserveLiveRefresh(err error, took time.Duration, known int) {
	result := "success"
	if err != nil {
		result = "error"
	} else {
		liveValuesKnown.Set(float64(known))
	}
	liveRefreshTotal.WithLabelValues(result).Inc()
	liveRefreshDuration.Observe(took.Seconds())
}

func AddEditorSessionsSwept(n int) {
	if n > 0 {
		editorSessionsSwept.Add(float64(n))
	}
}

func IncRateLimited(path string) {
	rateLimited.WithLabelValues(path).Inc()
}
