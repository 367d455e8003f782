// Package metrics expone métricas Prometheus del entrenamiento y del cache.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_training_runs_total",
			Help: "Corridas de entrenamiento por estado final",
		},
		[]string{"status"},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recsys_training_duration_seconds",
			Help:    "Duración de una corrida completa",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	TrainingEpochs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recsys_training_epochs",
			Help: "Épocas ejecutadas en la última corrida",
		},
	)

	TrainingLoss = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recsys_training_loss",
			Help: "Pérdida final de la última corrida (set=train|validation)",
		},
		[]string{"set"},
	)

	DroppedObservations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recsys_dropped_observations_total",
			Help: "Ratings descartados por referencias rotas",
		},
	)

	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recsys_persist_failures_total",
			Help: "Escrituras de parámetros o listas que fallaron",
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Hits del cache Redis",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Misses del cache Redis",
		},
		[]string{"cache_type"},
	)
)

// RunSummary es lo que necesitamos de un reporte de entrenamiento.
type RunSummary struct {
	Status          string
	Duration        time.Duration
	Epochs          int
	Loss            float64
	ValLoss         float64
	LossValid       bool
	ValLossValid    bool
	Dropped         int
	PersistFailures int
}

// RecordTrainingRun registra una corrida terminada.
func RecordTrainingRun(s RunSummary) {
	TrainingRuns.WithLabelValues(s.Status).Inc()
	TrainingDuration.Observe(s.Duration.Seconds())
	if s.Epochs > 0 {
		TrainingEpochs.Set(float64(s.Epochs))
	}
	if s.LossValid {
		TrainingLoss.WithLabelValues("train").Set(s.Loss)
	}
	if s.ValLossValid {
		TrainingLoss.WithLabelValues("validation").Set(s.ValLoss)
	}
	DroppedObservations.Add(float64(s.Dropped))
	PersistFailures.Add(float64(s.PersistFailures))
}

// RecordCache registra un acceso al cache.
func RecordCache(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}
