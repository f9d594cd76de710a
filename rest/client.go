// Package rest implements the REST connector: public and private
// sessions over the exchange's HTTPS API, plus isolated single-call
// sessions for concurrent bar queries.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/go-cryptoconnect/coinbasepro/auth"
	"github.com/go-cryptoconnect/coinbasepro/log"
	"github.com/go-cryptoconnect/coinbasepro/util"
)

const (
	headerRateLimitRemaining = "CB-RATELIMIT-REMAINING"
	headerRateLimitReset     = "CB-RATELIMIT-RESET"
)

// rateTracker holds the rate-limit state parsed off response headers.
// Each session owns one, shared with the Isolated copies made from it,
// so GetRateLimit reflects the most recent call on that session or any
// of its isolated copies.
type rateTracker struct {
	mu      sync.RWMutex
	limit   int64
	resetAt time.Time
}

func newRateTracker() *rateTracker {
	return &rateTracker{limit: -1}
}

func (t *rateTracker) update(header http.Header) {
	remaining := header.Get(headerRateLimitRemaining)
	reset := header.Get(headerRateLimitReset)
	if remaining == "" && reset == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if remaining != "" {
		t.limit = util.MustInt64(remaining)
	}
	if reset != "" {
		t.resetAt = time.Unix(util.MustInt64(reset), 0)
	}
}

func (t *rateTracker) get() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.limit
}

func (t *rateTracker) getResetAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resetAt
}

// Session is one REST connection profile: a base URL and an optional
// Auth decorator. A nil Auth makes this a public session.
type Session struct {
	baseURL string
	auth    *auth.Auth
	client  *http.Client
	rate    *rateTracker
}

// NewPublicSession builds a session with no auth decorator.
func NewPublicSession(baseURL string) *Session {
	return &Session{baseURL: baseURL, client: http.DefaultClient, rate: newRateTracker()}
}

// NewPrivateSession builds a session pre-registered with the auth
// decorator, for endpoints that require signing.
func NewPrivateSession(baseURL string, a *auth.Auth) *Session {
	return &Session{baseURL: baseURL, auth: a, client: http.DefaultClient, rate: newRateTracker()}
}

// Isolated returns a copy of this session backed by a fresh HTTP
// transport with keep-alives disabled, so each call opens its own
// TCP+TLS connection. The underlying http.Client is not safe for one
// goroutine's in-flight request to share a connection with another
// goroutine issuing a concurrent request against a non-multiplexable
// stream, so concurrent bar-query workers each get an isolated copy.
// It shares the parent session's rate tracker, since the limit applies
// to the credentials, not the transport.
func (s *Session) Isolated() *Session {
	return &Session{
		baseURL: s.baseURL,
		auth:    s.auth,
		rate:    s.rate,
		client: &http.Client{
			Transport: &http.Transport{DisableKeepAlives: true},
		},
	}
}

// GetRateLimit returns the remaining request count the exchange
// reported on the last response for this session.
//
// Default value: -1
func (s *Session) GetRateLimit() int64 {
	return s.rate.get()
}

// GetRateLimitResetAt returns the local time at which the rate-limit
// window reported on the last response resets.
func (s *Session) GetRateLimitResetAt() time.Time {
	return s.rate.getResetAt()
}

func get[T any](ctx context.Context, s *Session, path string, params url.Values) (T, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(path, params), nil)
	return do[T](s, req, nil)
}

func post[T any](ctx context.Context, s *Session, path string, body any) (T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		var empty T
		return empty, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.requestURL(path, nil), bytes.NewReader(payload))
	return do[T](s, req, payload)
}

// postRaw behaves like post but returns the response body verbatim
// regardless of status code: the exchange reports order-placement
// failures as a JSON "message" field on a 4xx response, not as an
// empty body, so the caller needs the body to classify the failure.
func postRaw(ctx context.Context, s *Session, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.requestURL(path, nil), bytes.NewReader(payload))

	log.Logger().Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("executing request")
	s.applyHeaders(req, payload)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	s.rate.update(resp.Header)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	log.Logger().Debug().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("received response")

	return raw, nil
}

func httpDelete[T any](ctx context.Context, s *Session, path string, params url.Values) (T, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodDelete, s.requestURL(path, params), nil)
	return do[T](s, req, nil)
}

func do[T any](s *Session, req *http.Request, body []byte) (T, error) {
	var empty T

	log.Logger().Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("executing request")

	s.applyHeaders(req, body)

	resp, err := s.client.Do(req)
	if err != nil {
		return empty, err
	}
	defer resp.Body.Close()

	s.rate.update(resp.Header)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, err
	}
	log.Logger().Debug().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("received response")

	if resp.StatusCode >= http.StatusBadRequest {
		return empty, fmt.Errorf("rest: non-OK response, code=%d, body=%s", resp.StatusCode, string(raw))
	}

	if len(raw) == 0 {
		return empty, nil
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return empty, err
	}
	return data, nil
}

func (s *Session) applyHeaders(req *http.Request, body []byte) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	if s.auth == nil {
		return
	}

	for key, value := range s.auth.RequestHeaders(req.Method, req.URL.RequestURI(), string(body)) {
		req.Header.Set(key, value)
	}
}

func (s *Session) requestURL(path string, params url.Values) string {
	full := s.baseURL + path
	if len(params) == 0 {
		return full
	}
	return fmt.Sprintf("%s?%s", full, params.Encode())
}

// newClientOID returns a monotonically increasing, process-local
// client order ID.
func newClientOID() string {
	return fmt.Sprintf("%d", clientOIDCounter.Add(1))
}
