package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// MultiUseCaseObserver fans an event out to every non-nil observer.
type MultiUseCaseObserver []UseCaseObserver

func (m MultiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		if obs != nil {
			obs.ObserveUseCase(ctx, event)
		}
	}
}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service use-case events to the provided writer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

// PrometheusUseCaseObserver counts use cases by outcome code and records
// their latency.
type PrometheusUseCaseObserver struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusUseCaseObserver registers its collectors on reg.
func NewPrometheusUseCaseObserver(reg prometheus.Registerer) *PrometheusUseCaseObserver {
	o := &PrometheusUseCaseObserver{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liftplan_use_case_total",
			Help: "Service use-case invocations by outcome code.",
		}, []string{"use_case", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "liftplan_use_case_duration_seconds",
			Help:    "Service use-case latency.",
			Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"use_case"}),
	}
	reg.MustRegister(o.total, o.duration)
	return o
}

func (o *PrometheusUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	code := "OK"
	if c, ok := event.Fields["code"].(string); ok && c != "" {
		code = c
	} else if !event.Success {
		code = "ERROR"
	}
	o.total.WithLabelValues(event.Name, code).Inc()
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	live := make(MultiUseCaseObserver, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}
