// Package gateway is the call boundary to the external identity backend. It
// owns the four remote operations (authenticate, register, renew,
// invalidate) plus a generic authorized call, and normalizes the backend's
// loosely structured payloads into the fixed TokenPair shape.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// TokenPair is a freshly issued credential pair. Both values are opaque to
// this system: they are stored, attached, and replaced, never parsed.
type TokenPair struct {
	Access  string
	Refresh string
}

// Response is a backend response with the body already drained, so the
// caller can replay or forward it freely.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Backend endpoint paths.
const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	refreshPath  = "/auth/refresh"
	logoutPath   = "/auth/logout"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the underlying transport (primarily for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Authenticate exchanges sign-in credentials for a fresh token pair.
func (c *Client) Authenticate(ctx context.Context, email, password string) (TokenPair, error) {
	return c.tokenRequest(ctx, loginPath, map[string]string{
		"email":    email,
		"password": password,
	}, "")
}

// Register creates an account and returns the first token pair for it.
func (c *Client) Register(ctx context.Context, email, username, password string) (TokenPair, error) {
	return c.tokenRequest(ctx, registerPath, map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}, "")
}

// Renew trades the refresh credential for a new token pair. The refresh
// credential rides as a bearer credential, not a body field.
func (c *Client) Renew(ctx context.Context, refresh string) (TokenPair, error) {
	return c.tokenRequest(ctx, refreshPath, nil, refresh)
}

// Invalidate asks the backend to revoke the session behind the access
// credential. Best-effort: callers are expected to proceed with local
// teardown whatever this returns.
func (c *Client) Invalidate(ctx context.Context, access string) error {
	resp, err := c.Do(ctx, http.MethodPost, logoutPath, access, nil)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return &StatusError{Code: resp.Status, Message: decodeErrorMessage(resp.Body)}
	}
	return nil
}

// Do performs a generic authorized backend call. A 401 becomes a
// *StatusError so the refresh coordinator can act on it; every other status
// passes through unchanged in the Response.
func (c *Client) Do(ctx context.Context, method, path, access string, body []byte) (*Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "[gateway Do] build request")
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "[gateway Do] %s %s", method, path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "[gateway Do] read response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &StatusError{Code: resp.StatusCode, Message: decodeErrorMessage(payload)}
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   payload,
	}, nil
}

// tokenRequest POSTs to one of the credential-issuing endpoints and
// normalizes the response into a TokenPair.
func (c *Client) tokenRequest(ctx context.Context, path string, body map[string]string, bearer string) (TokenPair, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return TokenPair{}, errors.Wrap(err, "[gateway tokenRequest] encode body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return TokenPair{}, errors.Wrap(err, "[gateway tokenRequest] build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return TokenPair{}, errors.Wrapf(err, "[gateway tokenRequest] POST %s", path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return TokenPair{}, errors.Wrap(err, "[gateway tokenRequest] read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("token request rejected")
		return TokenPair{}, &StatusError{Code: resp.StatusCode, Message: decodeErrorMessage(payload)}
	}

	return decodeTokenPair(payload)
}
