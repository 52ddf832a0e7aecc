// Package metrics provides Prometheus observability metrics for the roster
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// GenerationRunsTotal counts timetable generation runs by strategy and outcome.
var GenerationRunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "roster",
	Name:      "generation_runs_total",
	Help:      "Total timetable generation runs by strategy and outcome",
}, []string{"strategy", "outcome"})

// UnderstaffedSlots tracks the number of empty slots in the last generated
// timetable. High values indicate the roster is too thin for the month.
var UnderstaffedSlots = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "roster",
	Name:      "understaffed_slots",
	Help:      "Number of slots with zero assigned agents in the last generated timetable",
})

// EngineDurationSeconds tracks time to generate a monthly timetable.
var EngineDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "roster",
	Name:      "engine_duration_seconds",
	Help:      "Time taken to generate a monthly timetable",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
})

// AIFallbacksTotal counts AI generation attempts that fell back to an empty
// timetable after a transport, parse, or invariant failure.
var AIFallbacksTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "roster",
	Name:      "ai_fallbacks_total",
	Help:      "AI scheduling attempts rejected or failed and replaced by an empty timetable",
})

// OverridesTotal counts manual overrides by kind (toggle or direct edit).
var OverridesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "roster",
	Name:      "overrides_total",
	Help:      "Manual override operations by kind",
}, []string{"kind"})
