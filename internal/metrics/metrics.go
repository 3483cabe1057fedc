// Package metrics exposes Prometheus instrumentation for the decision
// engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/teslashibe/go-rover/pkg/brain"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rover_decisions_total",
		Help: "Navigation decisions made, by action.",
	}, []string{"action"})

	emergencyStops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rover_emergency_stops_total",
		Help: "Emergency stops triggered by a critical front reading.",
	})

	validationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rover_validation_failures_total",
		Help: "Decision cycles rejected for malformed input.",
	})

	decideDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rover_decide_duration_seconds",
		Help:    "Wall time of one full decision cycle.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	})

	smoothedDistance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rover_smoothed_distance_cm",
		Help: "Latest smoothed ultrasonic distance, by sensor.",
	}, []string{"sensor"})

	stageTraveled = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rover_stage_traveled_cm",
		Help: "Distance traveled within the current stage.",
	})
)

// ObserveDecision records one successful decision cycle. criticalCM is the
// emergency-stop threshold, used to classify stops.
func ObserveDecision(d brain.Decision, s brain.SmoothedState, criticalCM float64, elapsed time.Duration) {
	decisionsTotal.WithLabelValues(string(d.Action)).Inc()
	decideDuration.Observe(elapsed.Seconds())

	if d.Action == brain.ActionStop && !d.Arrived && s.Front <= criticalCM {
		emergencyStops.Inc()
	}

	smoothedDistance.WithLabelValues("front").Set(s.Front)
	smoothedDistance.WithLabelValues("left").Set(s.Left)
	smoothedDistance.WithLabelValues("right").Set(s.Right)
	stageTraveled.Set(d.TraveledCM)
}

// ObserveValidationFailure counts a rejected decision cycle.
func ObserveValidationFailure() {
	validationFailures.Inc()
}
