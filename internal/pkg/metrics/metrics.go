// Package metrics holds the Prometheus collectors of the courier tracker. The
// collectors register with the default registry on package load and are
// served by the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "courier_tracker"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "The total number of handled API requests",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Time spent handling API requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "The total number of requests sent to remote services",
	}, []string{"service", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Time spent waiting for remote services, retries included",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service"})

	geocodeCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_cache_lookups_total",
		Help:      "Geocode cache lookups by result",
	}, []string{"result"})

	openMapViews = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "open_map_views",
		Help:      "The number of currently open map views",
	})

	trackingTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_ticks_total",
		Help:      "Tracking job ticks by outcome",
	}, []string{"outcome"})

	publishedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Domain events sent to the broker by topic and outcome",
	}, []string{"topic", "outcome"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeSkip  = "skipped"
)

// ObserveHTTPRequest records one handled API request.
func ObserveHTTPRequest(method, route, status string, took time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// ObserveUpstream records one logical call to a remote service.
func ObserveUpstream(service string, err error, took time.Duration) {
	upstreamRequests.WithLabelValues(service, outcome(err)).Inc()
	upstreamDuration.WithLabelValues(service).Observe(took.Seconds())
}

// GeocodeCacheHit and GeocodeCacheMiss count cache lookups.
func GeocodeCacheHit()  { geocodeCache.WithLabelValues("hit").Inc() }
func GeocodeCacheMiss() { geocodeCache.WithLabelValues("miss").Inc() }

// SetOpenMapViews publishes the size of the view registry.
func SetOpenMapViews(n int) {
	openMapViews.Set(float64(n))
}

// ObserveTrackingTick counts one tracking job run.
func ObserveTrackingTick(result string) {
	trackingTicks.WithLabelValues(result).Inc()
}

// ObservePublish counts one event publication.
func ObservePublish(topic string, err error) {
	publishedEvents.WithLabelValues(topic, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
