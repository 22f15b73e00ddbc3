// Package session holds the process-local, UI-facing session state: who is
// signed in, whether the cookie check has completed, and the four operations
// the rendering layer drives (sign-up, sign-in, logout, rehydration).
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/Ezzedini-Yassine/frontdbforet/cookies"
	"github.com/Ezzedini-Yassine/frontdbforet/gateway"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Identity is the signed-in user's display attributes. It is derived from
// the submitted form data, not from a backend lookup; nothing
// security-sensitive may be decided from it.
type Identity struct {
	Email    string
	Username string
}

// State is the snapshot the rendering layer consumes.
type State struct {
	Identity        *Identity
	IsAuthenticated bool
	IsLoading       bool
}

// Credentials is the sign-in payload.
type Credentials struct {
	Email    string
	Password string
}

// Registration is the sign-up payload.
type Registration struct {
	Email    string
	Username string
	Password string
}

// Gateway is the slice of the backend the store drives.
type Gateway interface {
	Authenticate(ctx context.Context, email, password string) (gateway.TokenPair, error)
	Register(ctx context.Context, email, username, password string) (gateway.TokenPair, error)
	Invalidate(ctx context.Context, access string) error
}

// Store owns the in-memory session identity; it is the only writer of it.
type Store struct {
	gateway Gateway
	cookies *cookies.Store
	log     zerolog.Logger

	lock          sync.RWMutex
	identity      *Identity
	authenticated bool
	loading       bool
}

type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func NewStore(gw Gateway, cookieStore *cookies.Store, options ...Option) *Store {
	s := &Store{
		gateway: gw,
		cookies: cookieStore,
		log:     zerolog.Nop(),
		loading: true, // until the first cookie-presence check completes
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SignIn validates the credentials, authenticates against the backend, and
// on success writes the cookie pair and caches the identity. Validation and
// backend errors propagate to the caller for display.
func (s *Store) SignIn(ctx context.Context, w http.ResponseWriter, creds Credentials) error {
	if err := ValidateCredentials(creds.Email, creds.Password); err != nil {
		return err
	}

	pair, err := s.gateway.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return errors.Wrap(err, "[Store.SignIn] authenticate")
	}

	s.cookies.SetSession(w, pair.Access, pair.Refresh)
	s.setIdentity(&Identity{Email: creds.Email})
	return nil
}

// SignUp validates the registration, creates the account, and on success
// writes the cookie pair and caches the identity.
func (s *Store) SignUp(ctx context.Context, w http.ResponseWriter, reg Registration) error {
	if err := ValidateRegistration(reg.Email, reg.Username, reg.Password); err != nil {
		return err
	}

	pair, err := s.gateway.Register(ctx, reg.Email, reg.Username, reg.Password)
	if err != nil {
		return errors.Wrap(err, "[Store.SignUp] register")
	}

	s.cookies.SetSession(w, pair.Access, pair.Refresh)
	s.setIdentity(&Identity{Email: reg.Email, Username: reg.Username})
	return nil
}

// Logout tears the session down. The backend invalidate call is best-effort:
// whether it succeeds or fails, the cookies and the cached identity are
// cleared. Logout never fails from the caller's perspective.
func (s *Store) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if access, ok := s.cookies.Access(r); ok {
		if err := s.gateway.Invalidate(ctx, access); err != nil {
			s.log.Warn().Err(err).Msg("backend session invalidation failed, tearing down locally")
		}
	}
	s.cookies.ClearSession(w)
	s.Expire()
}

// RefreshAuth re-derives the authenticated state from cookie presence alone,
// with no backend round trip. Cheap rehydration after a full page load.
func (s *Store) RefreshAuth(r *http.Request) bool {
	authenticated := s.cookies.HasAccess(r)

	s.lock.Lock()
	s.authenticated = authenticated
	if !authenticated {
		s.identity = nil
	}
	s.loading = false
	s.lock.Unlock()

	return authenticated
}

// Expire clears the local session state. It is the refresh coordinator's
// session-expired hook target.
func (s *Store) Expire() {
	s.lock.Lock()
	s.identity = nil
	s.authenticated = false
	s.loading = false
	s.lock.Unlock()
}

// Snapshot returns the current UI-facing state.
func (s *Store) Snapshot() State {
	s.lock.RLock()
	defer s.lock.RUnlock()

	var identity *Identity
	if s.identity != nil {
		copied := *s.identity
		identity = &copied
	}
	return State{
		Identity:        identity,
		IsAuthenticated: s.authenticated,
		IsLoading:       s.loading,
	}
}

func (s *Store) setIdentity(identity *Identity) {
	s.lock.Lock()
	s.identity = identity
	s.authenticated = true
	s.loading = false
	s.lock.Unlock()
}
