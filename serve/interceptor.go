package serve

import (
	"github.com/advdv/rintercept"
	"github.com/advdv/rintercept/logsink"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// NewRegistry creates the prometheus registry served on the metrics path.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewInterceptor creates the interceptor of the app. Its policy is read from the environment,
// failures are logged to zap and every finalized response is counted in 'reg'.
func NewInterceptor(env Environment, logs *zap.Logger, reg *prometheus.Registry) *rintercept.Interceptor {
	return rintercept.New(
		rintercept.WithPolicy(env.interceptPolicy().Policy(logsink.Zap(logs))),
		rintercept.WithMetrics(rintercept.NewMetrics(reg)),
	)
}
