// Package metrics registers the Prometheus collectors for the auth frontend.
// Everything is registered on the default registry and exposed via /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RenewalAttempts counts renewal exchanges dispatched to the backend.
	// With the coordinator in place this increments once per expiry window,
	// no matter how many calls failed concurrently.
	RenewalAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authfront_renewal_attempts_total",
		Help: "Renewal exchanges dispatched to the identity backend.",
	})

	// RenewalOutcomes splits settled renewal cycles by outcome.
	RenewalOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "authfront_renewal_outcomes_total",
		Help: "Settled renewal cycles by outcome.",
	}, []string{"outcome"})

	// RenewalJoins counts callers that joined an already in-flight renewal
	// instead of dispatching their own.
	RenewalJoins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authfront_renewal_joins_total",
		Help: "Callers that waited on an in-flight renewal exchange.",
	})

	// Replays counts original calls replayed after a successful renewal.
	Replays = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authfront_replays_total",
		Help: "Authorized calls replayed after credential renewal.",
	})

	// SessionExpiries counts forced sign-outs from unrecoverable renewals.
	SessionExpiries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "authfront_session_expiries_total",
		Help: "Sessions terminated because renewal was impossible.",
	})

	// HTTPRequests counts served requests by method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "authfront_http_requests_total",
		Help: "Served HTTP requests.",
	}, []string{"method", "status"})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
