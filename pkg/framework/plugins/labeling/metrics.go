package labeling

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCorrect   = "correct"
	outcomeIncorrect = "incorrect"
	outcomeCanceled  = "canceled"
	outcomeError     = "error"
)

var (
	// runsTotal counts runs by engine and outcome
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labeling",
		Name:      "runs_total",
		Help:      "Total labeling runs by engine and outcome",
	}, []string{"engine", "outcome"})

	// runDuration tracks wall-clock time per run
	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "labeling",
		Name:      "run_duration_seconds",
		Help:      "Labeling run duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4m
	}, []string{"engine"})

	// stepsTotal counts generations and iterations
	stepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labeling",
		Name:      "steps_total",
		Help:      "Total generations (GA) or iterations (SA) executed",
	}, []string{"engine"})

	// bestFitness holds the fitness of the last finished run
	bestFitness = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "labeling",
		Name:      "best_fitness",
		Help:      "Best fitness of the most recent run",
	}, []string{"engine"})

	// stopReasons counts why runs ended
	stopReasons = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "labeling",
		Name:      "stop_reason_total",
		Help:      "Runs by stop reason",
	}, []string{"engine", "reason"})
)

func observeRun(r *Result, runErr error) {
	engine := string(r.Engine)
	outcome := outcomeIncorrect
	switch {
	case runErr != nil:
		outcome = outcomeCanceled
	case r.Best.Correct:
		outcome = outcomeCorrect
	}
	runsTotal.WithLabelValues(engine, outcome).Inc()
	runDuration.WithLabelValues(engine).Observe(r.Elapsed.Seconds())
	stepsTotal.WithLabelValues(engine).Add(float64(r.Steps))
	bestFitness.WithLabelValues(engine).Set(r.Best.Fitness)
	stopReasons.WithLabelValues(engine, string(r.StopReason)).Inc()
}
