package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pairingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clutch_pairings_total",
		Help: "Pairing predictions by outcome",
	}, []string{"outcome"})

	pairingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clutch_pairing_duration_seconds",
		Help:    "Time to predict one pairing",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 16),
	})

	pairingRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clutch_pairing_rows",
		Help:    "Distinct offspring genotypes per pairing before ranking",
		Buckets: prometheus.ExponentialBuckets(1, 3, 10),
	})

	pairingPruned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clutch_pairing_pruned_mass",
		Help:    "Probability mass pruned as negligible per pairing",
		Buckets: []float64{0, 1e-9, 1e-8, 1e-7, 1e-6, 1e-5},
	})

	parseFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clutch_parse_llm_fallbacks_total",
		Help: "Genotype parses handed to the LLM by result",
	}, []string{"result"})
)
