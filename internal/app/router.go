package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forzencookie/verifikat/internal/balances"
	"github.com/forzencookie/verifikat/internal/filings"
	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/observability"
	"github.com/forzencookie/verifikat/internal/payroll"
	"github.com/forzencookie/verifikat/internal/platform/httpx"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Logger   *slog.Logger
	Config   *Config
	Metrics  *observability.Metrics
	Ledger   *ledger.Handler
	Balances *balances.Handler
	Filings  *filings.Handler
	Payroll  *payroll.Handler
}

// NewRouter wires the middleware stack and the API surface.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{Logger: deps.Logger, Config: deps.Config}) {
		r.Use(mw)
	}
	r.Use(deps.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		deps.Ledger.Routes(api)
		deps.Balances.Routes(api)
		deps.Filings.Routes(api)
		deps.Payroll.Routes(api)
	})

	return r
}
