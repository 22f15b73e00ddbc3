package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Ezzedini-Yassine/frontdbforet/cookies"
	"github.com/Ezzedini-Yassine/frontdbforet/gateway"
	"github.com/Ezzedini-Yassine/frontdbforet/internal/config"
	"github.com/Ezzedini-Yassine/frontdbforet/refresh"
	"github.com/Ezzedini-Yassine/frontdbforet/session"
)

// Backend is the full surface of the identity service this server consumes.
// *gateway.Client implements it; tests substitute a gatewayfake.
type Backend interface {
	session.Gateway
	refresh.Gateway
	Do(ctx context.Context, method, path, access string, body []byte) (*gateway.Response, error)
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config

	backend     Backend
	coordinator *refresh.Coordinator
	cookies     *cookies.Store
	sessions    *session.Store
}

func New(config config.Config, backend Backend) *Server {
	cookieStore := cookies.New(
		config.GetAccessCookieName(),
		config.GetRefreshCookieName(),
		config.GetEnv() == "PROD",
	)
	sessionStore := session.NewStore(backend, cookieStore)
	coordinator := refresh.New(backend, refresh.WithSessionExpiredHook(sessionStore.Expire))

	s := &Server{
		mux:         http.NewServeMux(),
		config:      config,
		backend:     backend,
		coordinator: coordinator,
		cookies:     cookieStore,
		sessions:    sessionStore,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
