package rintercept

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result is the metric label for how an interception ended.
type Result string

const (
	ResultRewritten   Result = "rewritten"
	ResultNotModified Result = "not_modified"
	ResultPassThrough Result = "pass_through"
	ResultRedirected  Result = "redirected"
	ResultFailed      Result = "failed"
)

// Metrics holds the prometheus collectors of an [Interceptor].
type Metrics struct {
	Interceptions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with 'reg'.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Interceptions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rintercept",
			Name:      "interceptions_total",
			Help:      "Responses finalized by an interceptor, by stage and result.",
		}, []string{"stage", "result"}),
	}
}

func (m *Metrics) observe(stage Stage, res Result) {
	if m == nil {
		return
	}

	m.Interceptions.WithLabelValues(string(stage), string(res)).Inc()
}
