// Package gatewayfake provides a scriptable in-memory stand-in for the
// identity backend, used by coordinator, session, and server tests.
package gatewayfake

import (
	"context"
	"net/http"
	"sync"

	"github.com/Ezzedini-Yassine/frontdbforet/gateway"
	"github.com/pkg/errors"
)

type FakeGateway struct {
	lock sync.Mutex

	// Per-operation behavior; any nil function falls back to a default that
	// issues the configured Pair.
	AuthenticateFn func(email, password string) (gateway.TokenPair, error)
	RegisterFn     func(email, username, password string) (gateway.TokenPair, error)
	RenewFn        func(refresh string) (gateway.TokenPair, error)
	InvalidateFn   func(access string) error
	DoFn           func(method, path, access string, body []byte) (*gateway.Response, error)

	// Pair is what the default behaviors issue.
	Pair gateway.TokenPair

	authenticateCalls int
	registerCalls     int
	renewCalls        int
	invalidateCalls   int
	doCalls           int
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		Pair: gateway.TokenPair{Access: "fake-access", Refresh: "fake-refresh"},
	}
}

func (g *FakeGateway) Authenticate(_ context.Context, email, password string) (gateway.TokenPair, error) {
	g.lock.Lock()
	g.authenticateCalls++
	fn := g.AuthenticateFn
	pair := g.Pair
	g.lock.Unlock()

	if fn != nil {
		return fn(email, password)
	}
	return pair, nil
}

func (g *FakeGateway) Register(_ context.Context, email, username, password string) (gateway.TokenPair, error) {
	g.lock.Lock()
	g.registerCalls++
	fn := g.RegisterFn
	pair := g.Pair
	g.lock.Unlock()

	if fn != nil {
		return fn(email, username, password)
	}
	return pair, nil
}

func (g *FakeGateway) Renew(_ context.Context, refresh string) (gateway.TokenPair, error) {
	g.lock.Lock()
	g.renewCalls++
	fn := g.RenewFn
	pair := g.Pair
	g.lock.Unlock()

	if fn != nil {
		return fn(refresh)
	}
	return pair, nil
}

func (g *FakeGateway) Invalidate(_ context.Context, access string) error {
	g.lock.Lock()
	g.invalidateCalls++
	fn := g.InvalidateFn
	g.lock.Unlock()

	if fn != nil {
		return fn(access)
	}
	return nil
}

func (g *FakeGateway) Do(_ context.Context, method, path, access string, body []byte) (*gateway.Response, error) {
	g.lock.Lock()
	g.doCalls++
	fn := g.DoFn
	g.lock.Unlock()

	if fn != nil {
		return fn(method, path, access, body)
	}
	return &gateway.Response{Status: http.StatusOK, Header: http.Header{}}, nil
}

func (g *FakeGateway) AuthenticateCalls() int { return g.count(&g.authenticateCalls) }
func (g *FakeGateway) RegisterCalls() int     { return g.count(&g.registerCalls) }
func (g *FakeGateway) RenewCalls() int        { return g.count(&g.renewCalls) }
func (g *FakeGateway) InvalidateCalls() int   { return g.count(&g.invalidateCalls) }
func (g *FakeGateway) DoCalls() int           { return g.count(&g.doCalls) }

func (g *FakeGateway) count(field *int) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return *field
}

// Unauthorized is a convenience 401 for scripting failure branches.
func Unauthorized() error {
	return &gateway.StatusError{Code: http.StatusUnauthorized, Message: "token expired"}
}

// Down is a convenience network-style error.
func Down() error {
	return errors.New("connection refused")
}
