package server

import (
	"net/http"
	"net/url"
	"strings"
)

// RouteGateMiddleware decides redirect vs pass-through before a page is
// served, from access-cookie presence alone. It never contacts the backend.
// An invalid-but-present credential is caught by the refresh coordinator on
// the first authorized call, not here.
func (s *Server) RouteGateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Rehydrates the session store as a side effect, so isLoading
		// settles before any page renders.
		present := s.sessions.RefreshAuth(r)

		switch {
		case isAuthPage(r.URL.Path) && present:
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
		case !isAuthPage(r.URL.Path) && !present:
			target := RouteLogin + "?" + CallbackParam + "=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusSeeOther)
		default:
			next(w, r)
		}
	}
}

// isAuthPage reports whether path is one of the sign-in/sign-up pages; every
// other gated page is protected.
func isAuthPage(path string) bool {
	return path == RouteLogin || path == RouteSignup
}

// sanitizeCallback accepts only absolute-path-relative callback targets so
// the post-sign-in redirect can never leave this site.
func sanitizeCallback(callback string) string {
	if callback == "" || !strings.HasPrefix(callback, "/") || strings.HasPrefix(callback, "//") {
		return ""
	}
	return callback
}
