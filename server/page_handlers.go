package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// AuthPageData contains data for rendering the login and signup pages
type AuthPageData struct {
	Error       string
	Email       string // Preserve email on error
	Username    string // Preserve username on error (signup only)
	CallbackURL string
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := AuthPageData{
			Error:       r.URL.Query().Get("error"),
			Email:       r.URL.Query().Get("email"),
			CallbackURL: sanitizeCallback(r.URL.Query().Get(CallbackParam)),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// SignupPageHandler displays the signup page (GET /signup)
func (s *Server) SignupPageHandler() http.HandlerFunc {
	signupTmpl, err := ParseTemplate("signup.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse signup template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := AuthPageData{
			Error:    r.URL.Query().Get("error"),
			Email:    r.URL.Query().Get("email"),
			Username: r.URL.Query().Get("username"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := signupTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render signup template")
			http.Error(w, "Failed to render signup page", http.StatusInternalServerError)
		}
	}
}

// DashboardPageHandler displays the protected area (GET /dashboard)
func (s *Server) DashboardPageHandler() http.HandlerFunc {
	dashboardTmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse dashboard template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		state := s.sessions.Snapshot()

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := dashboardTmpl.Execute(w, state); err != nil {
			log.Err(err).Msg("Failed to render dashboard template")
			http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		}
	}
}

// IndexHandler sends the root to the protected area; the route gate has
// already bounced unauthenticated visitors to the login page.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteIndex {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}
