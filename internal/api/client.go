// Package api is the typed client for the brokerdesk REST backend. It
// owns the cross-cutting request concerns in one place: bearer token
// attachment, the single 401 interception point that tears down the
// session, the error taxonomy, and a bounded per-request timeout.
//
// The client never retries on its own; a failed request is surfaced to
// the screen, where re-submitting is a user decision.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rohanvaze/brokerdesk/internal/session"
)

// Config holds the client's connection parameters.
type Config struct {
	// BaseURL is the API root, e.g. "https://crm.example.in/api".
	BaseURL string
	// Timeout bounds each request. The source application had none; a
	// hung request here fails with ErrTimeout instead of hanging a screen.
	Timeout time.Duration
}

// Client issues requests against the external CRM API on behalf of the
// injected session.
type Client struct {
	cfg      Config
	http     *http.Client
	session  *session.Session
	observer Observer
}

// NewClient creates a Client bound to the given session.
func NewClient(cfg Config, sess *session.Session, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		session:  sess,
		observer: observer,
	}
}

// Resource accessors.

func (c *Client) Auth() *AuthService                   { return &AuthService{c} }
func (c *Client) Dashboard() *DashboardService         { return &DashboardService{c} }
func (c *Client) Properties() *PropertyService         { return &PropertyService{c} }
func (c *Client) Customers() *CustomerService          { return &CustomerService{c} }
func (c *Client) Deals() *DealService                  { return &DealService{c} }
func (c *Client) Projects() *ProjectService            { return &ProjectService{c} }
func (c *Client) Events() *EventService                { return &EventService{c} }
func (c *Client) Notifications() *NotificationService  { return &NotificationService{c} }

// apiError is the error body shape the backend returns for rejections.
type apiError struct {
	Detail string `json:"detail"`
}

// do issues one request and decodes the response into out (when non-nil).
// body is JSON-encoded when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, method, path, query, body, out)

	event := RequestEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	c.observer.OnRequestComplete(event)
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// The deadline firing is a timeout; the caller canceling the
		// parent context (screen teardown) is not, and its result is
		// discarded rather than reported.
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return 0, ErrTimeout
		case errors.Is(ctx.Err(), context.Canceled):
			return 0, context.Canceled
		}
		return 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
			}
		}
		return resp.StatusCode, nil
	}

	return resp.StatusCode, c.statusError(resp.StatusCode, respBody)
}

// statusError maps a non-2xx response onto the error taxonomy. The 401
// branch is the sole global interception point: it invalidates the
// session before any screen-level handler can see the error.
func (c *Client) statusError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		c.session.Invalidate()
		return ErrUnauthorized

	case status == http.StatusNotFound:
		return ErrNotFound

	case status >= 500:
		return ErrServer

	default:
		var ae apiError
		_ = json.Unmarshal(body, &ae)
		return &ValidationError{Status: status, Message: ae.Detail}
	}
}

// IsStale reports whether err means local state references an entity the
// server no longer has.
func IsStale(err error) bool {
	return errors.Is(err, ErrNotFound)
}
