package registry

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records tool call counts and latencies.
// A nil *Metrics records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates tool call metrics and registers them with reg.
// Pass nil to create unregistered metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchr_tool_calls_total",
				Help: "Total number of tool calls by tool and status",
			},
			[]string{"tool", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "matchr_tool_call_duration_seconds",
				Help:    "Duration of tool calls in seconds",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"tool"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.duration)
	}
	return m
}

// Status labels for matchr_tool_calls_total.
const (
	statusOK       = "ok"
	statusError    = "error"
	statusNotFound = "not_found"
)

// unknownTool labels calls to unregistered tools, keeping label
// cardinality bounded by the registry size.
const unknownTool = "unknown"

func (m *Metrics) observe(tool string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := statusOK
	switch {
	case errors.Is(err, ErrToolNotFound):
		status = statusNotFound
	case err != nil:
		status = statusError
	}
	m.calls.WithLabelValues(tool, status).Inc()
	if status != statusNotFound {
		m.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
	}
}
