// Package refresh coordinates credential renewal across concurrent
// authorized calls. When the backend rejects an access credential, exactly
// one renewal exchange is dispatched per expiry window; every call that
// fails while it is in flight waits for the same outcome, and every waiter
// either replays against the renewed credential or receives the same
// terminal error.
package refresh

import (
	"context"
	"sync"

	"github.com/Ezzedini-Yassine/frontdbforet/gateway"
	apperrors "github.com/Ezzedini-Yassine/frontdbforet/internal/errors"
	"github.com/Ezzedini-Yassine/frontdbforet/internal/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Call performs one authorized backend operation with the supplied access
// credential. It must return an error for which gateway.IsUnauthorized
// reports true when the backend rejects the credential; any other failure is
// passed through the coordinator unchanged.
type Call func(ctx context.Context, access string) error

// Gateway is the one remote operation the coordinator needs.
type Gateway interface {
	Renew(ctx context.Context, refresh string) (gateway.TokenPair, error)
}

// Coordinator serializes renewal exchanges. The single-flight group is the
// multi-threaded stand-in for a refresh-in-progress flag plus a pending
// queue: the first 401 of an expiry window dispatches the renewal, later
// 401s subscribe to it, and the key is forgotten when the cycle settles.
type Coordinator struct {
	gateway          Gateway
	group            singleflight.Group
	onSessionExpired func()
	log              zerolog.Logger

	// Dedupes the teardown when several replays of the same renewed
	// credential are rejected.
	expireMu      sync.Mutex
	expiredAccess string
}

// One process-wide renewal at a time, so one key.
const renewalKey = "renewal"

type Option func(*Coordinator)

// WithSessionExpiredHook registers the teardown to run when renewal is
// impossible. Invoked at most once per renewal cycle.
func WithSessionExpiredHook(hook func()) Option {
	return func(c *Coordinator) {
		c.onSessionExpired = hook
	}
}

// WithLogger sets the coordinator logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.log = log
	}
}

func New(gw Gateway, options ...Option) *Coordinator {
	c := &Coordinator{
		gateway: gw,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Do dispatches call with pair.Access and transparently renews the
// credential pair when the backend rejects it.
//
// Outcomes:
//   - call succeeds, or fails with anything but a 401: passed through
//     unchanged, pair returned as-is.
//   - 401, renewal succeeds: call is replayed exactly once with the renewed
//     access credential and the renewed pair is returned so the caller can
//     persist it.
//   - 401, renewal fails (401, other status, or network error alike): the
//     session is terminated and the error satisfies
//     errors.Is(err, ErrSessionExpired).
//   - the replayed call is rejected again: also terminal. A second renewal
//     cycle is never started for the same call.
func (c *Coordinator) Do(ctx context.Context, pair gateway.TokenPair, call Call) (gateway.TokenPair, error) {
	err := call(ctx, pair.Access)
	if err == nil || !gateway.IsUnauthorized(err) {
		return pair, err
	}

	renewed, renewErr := c.renew(ctx, pair.Refresh)
	if renewErr != nil {
		return gateway.TokenPair{}, apperrors.Expired(renewErr)
	}

	metrics.Replays.Inc()
	err = call(ctx, renewed.Access)
	if err != nil && gateway.IsUnauthorized(err) {
		// The backend rejected a just-renewed credential; another cycle
		// cannot fix that, so force sign-out instead of surfacing a stale
		// 401 to the caller.
		c.expireOnce(renewed.Access, err)
		return gateway.TokenPair{}, apperrors.Expired(err)
	}
	return renewed, err
}

// renew performs the single de-duplicated renewal exchange. Waiters that
// join while it is in flight block until it settles and share its outcome;
// a caller whose context is canceled mid-wait still receives the shared
// outcome, so no waiter can observe a different result than its cycle peers.
func (c *Coordinator) renew(ctx context.Context, refresh string) (gateway.TokenPair, error) {
	result, err, shared := c.group.Do(renewalKey, func() (any, error) {
		metrics.RenewalAttempts.Inc()
		pair, renewErr := c.gateway.Renew(ctx, refresh)
		if renewErr != nil {
			metrics.RenewalOutcomes.WithLabelValues(metrics.OutcomeFailure).Inc()
			c.expire(renewErr)
			return nil, renewErr
		}
		metrics.RenewalOutcomes.WithLabelValues(metrics.OutcomeSuccess).Inc()
		return pair, nil
	})
	if shared {
		metrics.RenewalJoins.Inc()
	}
	if err != nil {
		return gateway.TokenPair{}, err
	}
	return result.(gateway.TokenPair), nil
}

// expireOnce runs the teardown for a rejected renewed credential at most
// once, however many callers replayed against it.
func (c *Coordinator) expireOnce(access string, cause error) {
	c.expireMu.Lock()
	seen := c.expiredAccess == access
	if !seen {
		c.expiredAccess = access
	}
	c.expireMu.Unlock()

	if seen {
		return
	}
	c.expire(cause)
}

func (c *Coordinator) expire(cause error) {
	metrics.SessionExpiries.Inc()
	c.log.Warn().Err(cause).Msg("credential renewal unrecoverable, forcing sign-out")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
