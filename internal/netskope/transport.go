package netskope

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"urllistsync/internal/domain"
	"urllistsync/internal/retry"
)

// DefaultTimeout bounds a single HTTP attempt.
const DefaultTimeout = 60 * time.Second

// APIError is a non-2xx reply that is not an authorization failure.
type APIError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// BaseURL turns a tenant host into the API v2 base URL. A value that
// already carries a scheme is used as the origin unchanged.
func BaseURL(tenant string) string {
	tenant = strings.TrimRight(strings.TrimSpace(tenant), "/")
	if !strings.Contains(tenant, "://") {
		tenant = "https://" + tenant
	}
	return tenant + "/api/v2"
}

// Transport issues authenticated JSON requests with bounded retries.
type Transport struct {
	Base   string
	Token  string
	HTTP   *http.Client
	Policy retry.Policy
	Log    *zap.Logger

	// Observe, if set, sees every attempt; status is 0 on transport errors.
	Observe func(method string, status int)
}

var _ domain.Requester = (*Transport)(nil)

// NewTransport returns a Transport using the default retry policy.
func NewTransport(base, token string, hc *http.Client) *Transport {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Transport{Base: base, Token: token, HTTP: hc, Policy: retry.Default()}
}

// Request sends method path with body encoded as JSON (nil sends no body)
// and returns the 2xx response body.
func (t *Transport) Request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = b
	}
	url := t.Base + path
	log := t.logger()

	p := t.Policy
	if p.MaxAttempts == 0 {
		p = retry.Default()
	}
	if p.OnRetry == nil {
		p.OnRetry = func(attempt int, wait time.Duration, err error) {
			log.Warn("request failed, retrying",
				zap.String("method", method),
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", p.MaxAttempts),
				zap.Duration("wait", wait),
				zap.Error(err))
		}
	}

	return retry.Do(ctx, p, func(ctx context.Context, attempt int) ([]byte, error) {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+t.Token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		log.Debug("api request",
			zap.String("method", method), zap.String("url", url),
			zap.Int("attempt", attempt), zap.Int("bytes", len(payload)))

		resp, err := t.client().Do(req)
		if err != nil {
			t.observe(method, 0)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, retry.Retryable(fmt.Errorf("%s %s: %w", method, url, err))
		}
		defer resp.Body.Close()
		t.observe(method, resp.StatusCode)

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, retry.Retryable(fmt.Errorf("%s %s: read body: %w", method, url, err))
		}

		switch {
		case resp.StatusCode/100 == 2:
			return respBody, nil
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, fmt.Errorf("%s %s: HTTP %d: %w", method, url, resp.StatusCode, domain.ErrUnauthorized)
		}
		apiErr := &APIError{Method: method, URL: url, Status: resp.StatusCode, Body: snippet(respBody)}
		if p.IsRetryableStatus(resp.StatusCode) {
			return nil, retry.Retryable(apiErr)
		}
		return nil, apiErr
	})
}

func (t *Transport) client() *http.Client {
	if t.HTTP == nil {
		return http.DefaultClient
	}
	return t.HTTP
}

func (t *Transport) observe(method string, status int) {
	if t.Observe != nil {
		t.Observe(method, status)
	}
}

func (t *Transport) logger() *zap.Logger {
	if t.Log == nil {
		return zap.NewNop()
	}
	return t.Log
}

func snippet(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
