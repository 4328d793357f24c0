package serve_test

import (
	"context"
	"net/http"

	"github.com/advdv/rintercept"
	"github.com/advdv/rintercept/serve"
	"github.com/cockroachdb/errors"
)

// TestEnv is a test environment with app-specific fields beyond BaseEnvironment.
type TestEnv struct {
	serve.BaseEnvironment
	Greeting string `env:"GREETING" envDefault:"hello"`
}

// Handlers serve the routes of the test app.
type Handlers struct {
	rt *serve.Runtime[TestEnv]
}

func NewHandlers(rt *serve.Runtime[TestEnv]) *Handlers {
	return &Handlers{rt: rt}
}

func (h *Handlers) Greet(ctx context.Context, w rintercept.ResponseWriter, r *http.Request) error {
	self, err := h.rt.Reverse("greet", r.PathValue("name"))
	if err != nil {
		return err
	}

	serve.Span(ctx).AddEvent("greeting")
	serve.Log(ctx).Info("greeting")

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write([]byte(`{"greeting":"` + h.rt.Env().Greeting + `","self":"` + self + `"}`))
	return err
}

func (h *Handlers) Item(_ context.Context, w rintercept.ResponseWriter, r *http.Request) error {
	http.NotFound(w, r)
	return nil
}

func (h *Handlers) Admin(_ context.Context, w rintercept.ResponseWriter, _ *http.Request) error {
	http.Error(w, "forbidden", http.StatusForbidden)
	return nil
}

func (h *Handlers) Login(_ context.Context, w rintercept.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write([]byte("please login"))
	return err
}

func (h *Handlers) Broken(_ context.Context, w rintercept.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte(`{"broken":true}`))
	return err
}

// routing registers the interceptors and the handlers of the test app.
func routing(m *serve.Mux, rt *serve.Runtime[TestEnv], h *Handlers) {
	ic := rt.Interceptor()

	m.Use(rintercept.Must(ic.Intercept(func(_ context.Context, body rintercept.Body, _ string, r *http.Request) (rintercept.Body, error) {
		if r.URL.Path == "/broken" {
			return body, errors.New("cannot stamp")
		}

		if body.Kind() != rintercept.KindJSON {
			return body, nil
		}

		return body.Set("service", rt.Env().ServiceName)
	})))

	m.Use(rintercept.Must(ic.InterceptByStatusCode(rintercept.Codes(http.StatusNotFound),
		func(context.Context, *http.Request) (rintercept.Outcome, error) {
			return rintercept.Respond(0, "<h1>nothing here</h1>", rintercept.HTMLContentType), nil
		})))

	m.Use(rintercept.Must(ic.InterceptByStatusCodeRedirectTo(rintercept.Codes(http.StatusForbidden),
		rintercept.RedirectToRoute(m.Reverser(), "login"))))

	m.HandleFunc("GET /greet/{name}", h.Greet, "greet")
	m.HandleFunc("GET /items/{id}", h.Item)
	m.HandleFunc("GET /admin", h.Admin)
	m.HandleFunc("GET /login", h.Login, "login")
	m.HandleFunc("GET /broken", h.Broken)
}
