package llm

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] llm_call task=%s provider=%s model=%s latency_ms=%d status=%s\n",
		ts, event.Task, event.Provider, event.Model, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

// PrometheusObserver exports call counts and latency.
type PrometheusObserver struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewPrometheusObserver registers the LLM call collectors on reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liftplan",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Generator calls by task, provider and outcome.",
		}, []string{"task", "provider", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "liftplan",
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "Latency of generator calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"task", "provider"}),
	}
	reg.MustRegister(o.calls, o.latency)
	return o
}

func (o *PrometheusObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	o.calls.WithLabelValues(string(event.Task), string(event.Provider), status).Inc()
	o.latency.WithLabelValues(string(event.Task), string(event.Provider)).
		Observe(float64(event.LatencyMs) / 1000)
}
