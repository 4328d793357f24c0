package serve

import (
	"net/http"

	"github.com/advdv/rintercept"
	"github.com/advdv/rintercept/logsink"
	"go.uber.org/zap"
)

// Mux is an alias for rintercept.ServeMux.
type Mux = rintercept.ServeMux

// NewMux creates a new Mux that buffers up to the configured limit and logs to zap.
func NewMux(env Environment, logs *zap.Logger) *Mux {
	return rintercept.NewServeMuxWith(
		env.bufferLimit(),
		logsink.Zap(logs),
		http.NewServeMux(),
		rintercept.NewReverser(),
	)
}
