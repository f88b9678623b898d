// Package transport submits serialized slices to the provisioning endpoint.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/metrics"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/serializer"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/validation"
)

// maxResponseBytes caps how much of a provisioner reply is read.
const maxResponseBytes = 1 << 20

var (
	// ErrInvalidRequest is returned before any I/O when the request fails validation.
	ErrInvalidRequest = errors.New("invalid slice request")
	// ErrRejected means the provisioner answered with success=false.
	ErrRejected = errors.New("provisioner rejected slice")
	// ErrUnexpectedStatus means the reply was neither a success nor a decodable rejection.
	ErrUnexpectedStatus = errors.New("unexpected provisioner response")
)

// Response is the provisioner's reply.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SubmitError carries the HTTP status and provisioner message of a failed submission.
type SubmitError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *SubmitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (status %d)", e.Cause, e.StatusCode)
	}
	return fmt.Sprintf("%v (status %d): %s", e.Cause, e.StatusCode, e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}

// Client posts slice requests to a provisioner. A Client is safe for
// concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     logging.Logger
	metrics    *metrics.Registry
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records submissions in the given registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *Client) { c.metrics = r }
}

// NewClient creates a client for the provisioning endpoint.
func NewClient(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewNopLogger(),
		userAgent:  "slicer/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the provisioning URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts req and interprets the reply. A nil error means the
// provisioner accepted the slice. Submit never retries.
func (c *Client) Submit(ctx context.Context, req *serializer.SliceRequest) (*Response, error) {
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	body, err := serializer.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slice: %w", err)
	}

	timer := logging.StartTimer(c.logger, "slice submitted",
		logging.SliceName(req.Name), logging.Count(req.VMCount()))

	resp, err := c.post(ctx, body)
	if c.metrics != nil {
		c.metrics.RecordSubmission(err == nil, req.VMCount(), timer.Elapsed())
	}
	if err != nil {
		timer.EndError(err)
		return resp, err
	}
	timer.End()
	return resp, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach provisioner: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read provisioner reply: %w", err)
	}

	var reply Response
	if jsonErr := json.Unmarshal(raw, &reply); jsonErr != nil {
		return nil, &SubmitError{StatusCode: httpResp.StatusCode, Message: snippet(raw), Cause: ErrUnexpectedStatus}
	}

	ok2xx := httpResp.StatusCode >= 200 && httpResp.StatusCode < 300
	switch {
	case reply.Success && ok2xx:
		return &reply, nil
	case !reply.Success:
		return &reply, &SubmitError{StatusCode: httpResp.StatusCode, Message: reply.Error, Cause: ErrRejected}
	default:
		return &reply, &SubmitError{StatusCode: httpResp.StatusCode, Cause: ErrUnexpectedStatus}
	}
}

// Ping checks that the provisioner host answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("provisioner returned status %d", resp.StatusCode)
	}
	return nil
}

func snippet(raw []byte) string {
	const max = 200
	s := string(bytes.TrimSpace(raw))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
