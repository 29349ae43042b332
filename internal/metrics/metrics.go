// Package metrics exposes wizard activity as Prometheus collectors.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so several instances can coexist in tests.
type Collector struct {
	registry    *prometheus.Registry
	stepVisits  *prometheus.CounterVec
	fieldEdits  *prometheus.CounterVec
	completions prometheus.Counter
	resets      prometheus.Counter
	saves       *prometheus.CounterVec
	logger      *slog.Logger
}

// New creates and registers the wizard collectors.
func New(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		stepVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valueprop_step_visits_total",
				Help: "Total number of times each wizard step became active",
			},
			[]string{"step"},
		),
		fieldEdits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valueprop_field_changes_total",
				Help: "Total number of answer field changes",
			},
			[]string{"field"},
		),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valueprop_completions_total",
			Help: "Total number of completed wizard sessions",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valueprop_resets_total",
			Help: "Total number of wizard resets",
		}),
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valueprop_saves_total",
				Help: "Total number of persistence writes by result",
			},
			[]string{"result"},
		),
		logger: logger,
	}
	c.registry.MustRegister(c.stepVisits, c.fieldEdits, c.completions, c.resets, c.saves)
	return c
}

// Hooks returns lifecycle hooks that log each event and record it.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepChange: func(ctx context.Context, e *domain.StepEvent) {
			c.logger.Debug("step_change", "from", e.From, "to", e.To)
			c.stepVisits.WithLabelValues(strconv.Itoa(e.To)).Inc()
		},
		OnDataChange: func(ctx context.Context, e *domain.DataEvent) {
			c.logger.Debug("data_change", "fields", e.Changed)
			for _, f := range e.Changed {
				c.fieldEdits.WithLabelValues(string(f)).Inc()
			}
		},
		OnComplete: func(ctx context.Context, e *domain.EventBase) {
			c.logger.Info("complete")
			c.completions.Inc()
		},
		OnReset: func(ctx context.Context, e *domain.EventBase) {
			c.logger.Info("reset")
			c.resets.Inc()
		},
	}
}

// ObserveSave records the outcome of a persistence write.
func (c *Collector) ObserveSave(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.saves.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
