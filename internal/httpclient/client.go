// Package httpclient is the single choke point for every backend
// call. It attaches the bearer token, classifies failures into the
// apierror taxonomy, and coordinates the global logout exactly once
// when the session is rejected.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"modavintage/internal/apierror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoginPath is the one endpoint whose 401 means bad credentials
// instead of an invalid session.
const LoginPath = "/auth/login"

// maxErrorBody caps how much of an error response is read for the
// message envelope.
const maxErrorBody = 8 << 10

// TokenStore is the slice of the session store the client needs.
// The token is re-read on every request; it is never cached between
// calls, so a login or logout mid-flight takes effect immediately.
type TokenStore interface {
	Get() (string, error)
}

// Client wraps a net/http client with the request/response behaviour
// every screen relies on.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	breaker *Breaker
	logger  zerolog.Logger

	// onSessionInvalid fires at most once per detection window (see
	// ResetSessionGuard). Constructor-injected: there is no late-bound
	// global handler to forget to register.
	onSessionInvalid func()
	sessionHandled   atomic.Bool
}

// New builds the client. onSessionInvalid must not be nil — wiring it
// is part of application bootstrap, and a missing handler would turn
// every expired session into a silent hang on a dead token.
func New(baseURL string, timeout time.Duration, store TokenStore, onSessionInvalid func()) *Client {
	if onSessionInvalid == nil {
		panic("httpclient: onSessionInvalid handler is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		http:             &http.Client{Timeout: timeout},
		store:            store,
		breaker:          NewBreaker(DefaultBreakerConfig()),
		logger:           log.With().Str("component", "httpclient").Logger(),
		onSessionInvalid: onSessionInvalid,
	}
}

// ResetSessionGuard re-arms the once-per-window logout notification.
// Called after a successful login or bootstrap validation.
func (c *Client) ResetSessionGuard() {
	c.sessionHandled.Store(false)
}

// Do performs one backend call. body (when non-nil) is JSON-encoded;
// out (when non-nil) receives the decoded 2xx response body. Every
// returned error is an *apierror.Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !c.breaker.Allow() {
		return apierror.Network(ErrBackendUnavailable)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apierror.New(apierror.KindUnknown, fmt.Sprintf("falha ao montar requisição: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apierror.New(apierror.KindUnknown, fmt.Sprintf("falha ao montar requisição: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Fresh token read per request — the store is the single source of
	// truth and may change between two calls of the same screen.
	if c.store != nil {
		if token, err := c.store.Get(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.breaker.OnFailure()
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return apierror.Network(err)
	}
	defer resp.Body.Close()
	c.breaker.OnSuccess()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return apierror.New(apierror.KindUnknown, "falha ao ler resposta do servidor")
		}
		if len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return apierror.New(apierror.KindUnknown, "resposta inesperada do servidor")
		}
		return nil
	}

	errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := apierror.FromResponse(resp.StatusCode, errBody, path == LoginPath)

	if apiErr.Kind == apierror.KindSessionInvalid {
		// Exactly one logout per detection window, no matter how many
		// in-flight calls come back 401 after the token died.
		if c.sessionHandled.CompareAndSwap(false, true) {
			c.logger.Warn().Str("path", path).Msg("session token rejected — triggering global logout")
			c.onSessionInvalid()
		}
	}
	return apiErr
}

// Get issues a GET through Do.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST through Do.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT through Do.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE through Do.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}
