// Command rintercept-demo serves a small API whose responses are shaped by interceptors.
//
// Every JSON response is stamped with a request id and the service version, unknown items render an HTML page
// and forbidden requests are redirected to the login page:
//
//	PORT=8080 go run ./cmd/rintercept-demo
//	curl -i localhost:8080/items/1
//	curl -i localhost:8080/items/42
//	curl -i localhost:8080/admin
package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/advdv/rintercept"
	"github.com/advdv/rintercept/internal/example"
	"github.com/advdv/rintercept/serve"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Env is the environment of the demo.
type Env struct {
	serve.BaseEnvironment
	Version string `env:"DEMO_VERSION" envDefault:"dev"`
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var items = []item{{ID: "1", Name: "kettle"}, {ID: "2", Name: "teapot"}}

func main() {
	serve.NewApp[Env](routing).Run()
}

func routing(m *serve.Mux, rt *serve.Runtime[Env], logs *zap.Logger) {
	ic := rt.Interceptor()

	m.Use(rintercept.Must(example.RequestID(ic, logs, uuid.NewString)))

	m.Use(rintercept.Must(ic.Intercept(
		func(_ context.Context, body rintercept.Body, _ string, _ *http.Request) (rintercept.Body, error) {
			if !body.Get("@this").IsObject() {
				return body, nil
			}

			return body.Set("version", rt.Env().Version)
		})))

	m.Use(rintercept.Must(ic.InterceptByStatusCode(rintercept.Codes(http.StatusNotFound),
		func(_ context.Context, r *http.Request) (rintercept.Outcome, error) {
			return rintercept.Respond(0, "<h1>"+r.URL.Path+" does not exist</h1>", rintercept.HTMLContentType), nil
		})))

	m.Use(rintercept.Must(ic.InterceptByStatusCodeRedirectTo(
		rintercept.Codes(http.StatusUnauthorized, http.StatusForbidden),
		rintercept.RedirectToRoute(m.Reverser(), "login"))))

	m.HandleFunc("GET /items/{id}", getItem, "get-item")
	m.HandleFunc("GET /admin", admin)
	m.HandleFunc("GET /login", login, "login")
}

func getItem(ctx context.Context, w rintercept.ResponseWriter, r *http.Request) error {
	it, ok := lo.Find(items, func(it item) bool { return it.ID == r.PathValue("id") })
	if !ok {
		example.Log(ctx).Info("item not found")
		http.NotFound(w, r)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(it)
}

func admin(_ context.Context, w rintercept.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusForbidden)
	return nil
}

func login(_ context.Context, w rintercept.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write([]byte("<form method=post><button>login</button></form>"))
	return err
}
