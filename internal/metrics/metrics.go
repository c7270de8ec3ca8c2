// Package metrics exposes Prometheus collectors for the check loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "closest_arcade_cycles_total",
		Help: "Total number of check cycles by status",
	}, []string{"status"})
	CycleDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "closest_arcade_cycle_duration_seconds",
		Help:    "Check cycle duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
	CandidatesExtracted = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "closest_arcade_candidates",
		Help: "Number of rankable records extracted in the last successful cycle",
	})
	ClosestDistanceMiles = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "closest_arcade_distance_miles",
		Help: "Distance to the closest arcade found in the last successful cycle",
	})
	ChangesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "closest_arcade_changes_total",
		Help: "Total number of detected closest-arcade changes",
	})
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "closest_arcade_notifications_total",
		Help: "Notification attempts by channel and result",
	}, []string{"channel", "result"})
	LastSuccessTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "closest_arcade_last_success_timestamp_seconds",
		Help: "Unix time of the last successful cycle",
	})
)

func init() {
	prometheus.MustRegister(CyclesTotal)
	prometheus.MustRegister(CycleDurationSeconds)
	prometheus.MustRegister(CandidatesExtracted)
	prometheus.MustRegister(ClosestDistanceMiles)
	prometheus.MustRegister(ChangesTotal)
	prometheus.MustRegister(NotificationsTotal)
	prometheus.MustRegister(LastSuccessTimestamp)
}

// Handler returns the Prometheus scrape handler for the default registry
func Handler() http.Handler { return promhttp.Handler() }
