package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector exposes planning counters to Prometheus. A nil *Collector is a
// valid no-op, which keeps call sites free of checks in tests.
type Collector struct {
	plans           *prometheus.CounterVec
	extractions     *prometheus.CounterVec
	adapterFailures *prometheus.CounterVec
	visits          prometheus.Histogram
	planDuration    prometheus.Histogram
	exports         *prometheus.CounterVec
}

// NewCollector registers the planner metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		plans: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_plans_total",
			Help: "Planning requests by outcome.",
		}, []string{"outcome"}),
		extractions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_extraction_stage_total",
			Help: "Successful parameter extractions by winning stage.",
		}, []string{"stage"}),
		adapterFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_adapter_failures_total",
			Help: "External adapter failures by adapter and kind.",
		}, []string{"adapter", "kind"}),
		visits: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "trip_itinerary_visits",
			Help:    "Scheduled visits per itinerary.",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 40},
		}),
		planDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "trip_plan_duration_seconds",
			Help:    "Wall time of a planning run.",
			Buckets: prometheus.DefBuckets,
		}),
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_calendar_exports_total",
			Help: "Calendar exports by sink and outcome.",
		}, []string{"sink", "outcome"}),
	}
}

func (c *Collector) PlanFinished(outcome string, visits int, took time.Duration) {
	if c == nil {
		return
	}
	c.plans.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		c.visits.Observe(float64(visits))
	}
	c.planDuration.Observe(took.Seconds())
}

func (c *Collector) Extracted(stage string) {
	if c == nil {
		return
	}
	c.extractions.WithLabelValues(stage).Inc()
}

func (c *Collector) AdapterFailed(adapter, kind string) {
	if c == nil {
		return
	}
	c.adapterFailures.WithLabelValues(adapter, kind).Inc()
}

func (c *Collector) Exported(sink, outcome string) {
	if c == nil {
		return
	}
	c.exports.WithLabelValues(sink, outcome).Inc()
}
