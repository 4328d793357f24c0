// Package serve runs a rintercept application as a standalone HTTP server.
//
// # Overview
//
// serve wires the pieces a service needs around a [rintercept.ServeMux]: environment parsing,
// structured logging, OpenTelemetry tracing, prometheus metrics and graceful shutdown.
// A complete application is created in a single call:
//
//	serve.NewApp[Env](func(m *serve.Mux, ic *rintercept.Interceptor) {
//	    m.Use(rintercept.Must(ic.InterceptByStatusCode(
//	        rintercept.Codes(http.StatusNotFound), notFoundPage)))
//	    m.HandleFunc("GET /items/{id}", getItem, "get-item")
//	}).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    serve.BaseEnvironment
//	    Greeting string `env:"GREETING" envDefault:"hello"`
//	}
//
// BaseEnvironment reads the following environment variables:
//
//	| Variable              | Required | Default     | Description                                   |
//	|-----------------------|----------|-------------|-----------------------------------------------|
//	| PORT                  | Yes      | -           | Port the HTTP server listens on               |
//	| SERVICE_NAME          | No       | rintercept  | Service name for logging and tracing          |
//	| HEALTH_PATH           | No       | /health     | Health check endpoint                         |
//	| METRICS_PATH          | No       | /metrics    | Prometheus scrape endpoint                    |
//	| LOG_LEVEL             | No       | info        | Log level (debug, info, warn, error)          |
//	| LOG_FILE              | No       | -           | Rotated log file, stderr when unset           |
//	| LOG_FILE_MAX_SIZE_MB  | No       | 100         | Size at which the log file is rotated         |
//	| LOG_FILE_MAX_BACKUPS  | No       | 3           | Rotated files to keep                         |
//	| LOG_FILE_COMPRESS     | No       | false       | Gzip rotated files                            |
//	| OTEL_EXPORTER         | No       | stdout      | Trace exporter: "stdout" or "none"            |
//	| RESPONSE_BUFFER_LIMIT | No       | -1          | Max buffered response bytes, -1 is unlimited  |
//	| SERVER_WRITE_TIMEOUT  | No       | 30s         | Write timeout of the HTTP server              |
//	| APP_ENV               | No       | -           | "production" disables interception logging    |
//	| RINTERCEPT_LOGGING    | No       | -           | Overrides the logging decision of APP_ENV     |
//	| RINTERCEPT_RETHROW    | No       | false       | Propagate callback failures as 500 responses  |
//
// # Runtime
//
// [Runtime] provides access to app-scoped dependencies and should be injected into
// routing and handler constructors via fx. It exposes the typed environment, route
// reversal and the app's [rintercept.Interceptor]. [Runtime.NewRequest] builds outbound
// requests with [github.com/carlmjohnson/requests] over a traced transport:
//
//	var quote string
//	err := rt.NewRequest().
//	    BaseURL("https://quotes.example.com").
//	    Path("/today").
//	    ToString(&quote).
//	    Fetch(ctx)
//
// # Request Context
//
// Handlers obtain request-scoped values from the context:
//
//	serve.Log(ctx).Info("loading item")
//	serve.Span(ctx).AddEvent("cache miss")
//
// The logger returned by [Log] carries trace_id and span_id of the active span.
//
// # Health and Metrics
//
// The health and metrics endpoints are mounted next to the application mux. They are
// neither traced nor intercepted. Every finalized interception is counted in
// rintercept_interceptions_total on the metrics endpoint.
package serve
