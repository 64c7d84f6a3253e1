// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProgramsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_programs_scored_total",
			Help: "Total number of programs scored, by program category",
		},
		[]string{"category"},
	)

	ProgramsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_programs_excluded_total",
			Help: "Total number of programs excluded from results, by reason",
		},
		[]string{"reason"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "matcher_match_duration_seconds",
			Help: "Duration of one full matching request in seconds",
		},
	)

	EstimatesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benefits_estimates_computed_total",
			Help: "Total number of benefit estimates computed, by family and eligibility",
		},
		[]string{"family", "eligible"},
	)

	SnapshotLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_snapshot_loads_total",
			Help: "Catalog snapshot loads, by source (cache or store)",
		},
		[]string{"source"},
	)
)
