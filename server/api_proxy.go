package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Ezzedini-Yassine/frontdbforet/gateway"
	apperrors "github.com/Ezzedini-Yassine/frontdbforet/internal/errors"
	"github.com/rs/zerolog/log"
)

// APIProxyHandler forwards authorized calls to the backend through the
// refresh coordinator. The browser never sees a credential and never sees a
// recoverable 401: an expired access credential is renewed and the call
// replayed before the response leaves this handler.
func (s *Server) APIProxyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := s.cookies.Access(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		refresh, _ := s.cookies.Refresh(r)

		// The body must be replayable, so drain it up front.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "unreadable request body")
			return
		}

		backendPath := strings.TrimPrefix(r.URL.Path, "/api")
		if r.URL.RawQuery != "" {
			backendPath += "?" + r.URL.RawQuery
		}

		var backendResp *gateway.Response
		pair := gateway.TokenPair{Access: access, Refresh: refresh}
		renewed, err := s.coordinator.Do(r.Context(), pair, func(ctx context.Context, access string) error {
			resp, callErr := s.backend.Do(ctx, r.Method, backendPath, access, body)
			if callErr != nil {
				return callErr
			}
			backendResp = resp
			return nil
		})

		// A settled renewal rotates the cookie pair exactly once, whatever
		// became of the replay; only terminal expiry clears instead.
		if renewed != pair && !apperrors.Is(err, apperrors.ErrSessionExpired) {
			s.cookies.SetSession(w, renewed.Access, renewed.Refresh)
		}

		switch {
		case err == nil:
			writeBackendResponse(w, backendResp)
		case apperrors.Is(err, apperrors.ErrSessionExpired):
			s.cookies.ClearSession(w)
			writeJSONError(w, http.StatusUnauthorized, "session expired")
		default:
			log.Err(err).Str("path", backendPath).Msg("backend call failed")
			writeJSONError(w, http.StatusBadGateway, "backend unavailable")
		}
	}
}

func writeBackendResponse(w http.ResponseWriter, resp *gateway.Response) {
	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
