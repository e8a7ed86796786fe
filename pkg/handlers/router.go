package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chris/custodial-bridge/pkg/api"
	"github.com/chris/custodial-bridge/pkg/bridge"
	"github.com/chris/custodial-bridge/pkg/handlers/respond"
	"github.com/chris/custodial-bridge/pkg/middleware"
)

// NewRouter mounts the bridge API and the Prometheus endpoint on a chi router.
// Signer and operator operations require operatorKey in the operator header;
// with an empty key they are refused to everyone.
func NewRouter(b bridge.Bridge, log *zap.Logger, gatherer prometheus.Gatherer, operatorKey string) http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Account)
	router.Use(middleware.Operator(operatorKey))
	router.Use(middleware.NewStructuredLogger(log))
	router.Use(chimw.Recoverer)

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return api.HandlerWithOptions(NewApiHandler(b), api.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: respond.ParamError,
		Middlewares:      []api.MiddlewareFunc{requireOperator},
	})
}

// requireOperator refuses operations declaring the operator security scheme
// unless the request presented the operator credential.
func requireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Value(api.OperatorKeyScopes) != nil && !middleware.IsOperator(r.Context()) {
			respond.Forbidden(w, "operator credential required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
