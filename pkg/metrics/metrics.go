// Package metrics exposes run progress as Prometheus metrics.
package metrics

import (
	"context"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/rehearse/pkg/domain"
)

// Collector owns the run metrics and the registry they live in.
type Collector struct {
	Registry *prometheus.Registry

	steps    *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cursor   prometheus.Gauge
	total    prometheus.Gauge

	position atomic.Int64
}

// New creates a Collector with a private registry.
func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_steps_total",
				Help: "Actions reached by the driver, including modifiers",
			},
			[]string{"method"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rehearse_outcomes_total",
				Help: "Dispatched commands by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rehearse_command_duration_seconds",
				Help:    "Time from dispatch to detected completion",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"method"},
		),
		cursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rehearse_cursor",
			Help: "Index of the action being processed",
		}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rehearse_actions",
			Help: "Number of actions in the document",
		}),
	}
	c.Registry.MustRegister(c.steps, c.outcomes, c.duration, c.cursor, c.total)
	return c
}

// Hooks returns driver callbacks that feed the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			c.steps.WithLabelValues(e.Method).Inc()
			c.cursor.Set(float64(e.Index))
			c.position.Store(int64(e.Index))
			c.total.Set(float64(e.Total))
		},
		OnOutcome: func(ctx context.Context, e *domain.CommandEvent) {
			c.outcomes.WithLabelValues(e.Outcome.Status.String()).Inc()
			c.duration.WithLabelValues(e.Method).Observe(e.Duration.Seconds())
		},
	}
}

// Cursor returns the index of the last action reached.
func (c *Collector) Cursor() int {
	return int(c.position.Load())
}
