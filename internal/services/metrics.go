package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cleanRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cleaner_runs_total",
		Help: "Total cleaning runs by outcome.",
	}, []string{"status"})

	cleanCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cleaner_cache_hits_total",
		Help: "Cleaning runs served from the memoization cache.",
	})

	cleanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cleaner_run_duration_seconds",
		Help:    "Wall time of full cleaning runs.",
		Buckets: prometheus.DefBuckets,
	})
)
