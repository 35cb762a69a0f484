package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/postclinics/clinic-dashboard/internal/appointment"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the current session bearer token, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Client wraps the clinic gateway's REST API. Every call is attempted
// exactly once; retry policy belongs to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	metrics    *Metrics
	logger     *logging.Logger
}

// NewClient constructs a gateway client. tokens may be nil for clients
// that only ever call Login.
func NewClient(baseURL string, tokens TokenSource, metrics *Metrics, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		metrics:    metrics,
		logger:     logger,
	}
}

// Credentials are the front-desk login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. No stale token is ever
// attached to this call. Gateway deployments disagree on the response
// field name, so both spellings are accepted.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var out struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(ctx, "login", http.MethodPost, "/api/auth/login", false, creds, &out); err != nil {
		return "", err
	}
	token := out.AccessToken
	if token == "" {
		token = out.Token
	}
	if token == "" {
		return "", fmt.Errorf("gateway: login response carried no token")
	}
	return token, nil
}

// ListAppointments fetches the full appointment list.
func (c *Client) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	var out struct {
		Appointments []appointment.Appointment `json:"appointments"`
	}
	if err := c.doJSON(ctx, "list_appointments", http.MethodGet, "/api/appointments", true, nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// CreateAppointment submits a new appointment; the gateway assigns id and
// status.
func (c *Client) CreateAppointment(ctx context.Context, draft appointment.Draft) (*appointment.Appointment, error) {
	var out appointment.Appointment
	if err := c.doJSON(ctx, "create_appointment", http.MethodPost, "/api/appointments", true, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAppointment replaces the fields of an existing appointment.
func (c *Client) UpdateAppointment(ctx context.Context, id string, draft appointment.Draft) (*appointment.Appointment, error) {
	path := "/api/appointments/" + url.PathEscape(id)
	var out appointment.Appointment
	if err := c.doJSON(ctx, "update_appointment", http.MethodPut, path, true, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAppointment removes an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	path := "/api/appointments/" + url.PathEscape(id)
	return c.doJSON(ctx, "delete_appointment", http.MethodDelete, path, true, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, authed bool, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: %s: marshal request: %w", op, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("gateway: %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	// The development gateway is fronted by an ngrok tunnel that
	// interposes a warning page unless this header is present.
	req.Header.Set("ngrok-skip-browser-warning", "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A failure caused by the caller's own context is not a gateway
		// outage: the page aborted the request, so the outcome must be
		// discarded without touching the session. The client's internal
		// timeout leaves ctx.Err() nil and still counts as unreachable.
		if ctx.Err() != nil {
			c.metrics.ObserveRequest(op, "canceled")
			return fmt.Errorf("gateway: %s: %w", op, ctx.Err())
		}
		c.metrics.ObserveRequest(op, "unreachable")
		return &UnreachableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(op, "error")
		return fmt.Errorf("gateway: %s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		c.logger.Warn("gateway returned non-2xx", "operation", op, "status", resp.StatusCode, "body", msg)
		c.metrics.ObserveRequest(op, "error")
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: msg}
	}

	c.metrics.ObserveRequest(op, "ok")
	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("gateway: %s: decode response: %w", op, err)
	}
	return nil
}
