package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Pages (gated on access-cookie presence; validity is the backend's
	// problem)
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSignup, ChainMiddleware(s.SignupPageHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardPageHandler(), s.PageMiddleware()...))

	// Auth actions
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.ActionMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthSignup, ChainMiddleware(s.SignupSubmissionHandler(), s.ActionMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.ActionMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.ActionMiddleware()...))

	// Authorized API proxy. Registered per method: a method-less "/api/"
	// pattern conflicts with the "GET /" catch-all under ServeMux precedence
	// rules.
	apiProxy := ChainMiddleware(s.APIProxyHandler(), s.ActionMiddleware()...)
	for _, method := range []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	} {
		s.RegisterRouteHandler(method+" "+RouteAPIPrefix, apiProxy)
	}

	// Ops
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}

// HealthzHandler reports process liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
