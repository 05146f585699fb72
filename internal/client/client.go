// Package client provides an HTTP client for the SOS Artisans REST API.
//
// Every call returns a *Response envelope; transport failures never surface as
// Go errors so callers decide at their own boundary how to report them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/sos-artisans/internal/apperr"
	"github.com/evcraddock/sos-artisans/internal/config"
)

const (
	// StatusTimeout is reported when the request deadline fires.
	StatusTimeout = http.StatusRequestTimeout
	// StatusTransport is reported for network and parsing failures.
	StatusTransport = http.StatusInternalServerError

	msgTimeout = "Request timeout"
	msgUnknown = "Unknown error occurred"
)

// Response is the uniform result of a call. Data and Error are exclusive.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status"`
	Kind   apperr.Kind     `json:"kind,omitempty"`

	// Body holds the raw answer of a failed HTTP call. It is not part of Error.
	Body string `json:"-"`
}

// OK reports whether the call succeeded.
func (r *Response) OK() bool {
	return r.Error == ""
}

// HasData reports whether a payload was returned.
func (r *Response) HasData() bool {
	return len(r.Data) > 0 && !bytes.Equal(r.Data, []byte("null"))
}

// Err converts a failed envelope into an *apperr.Error; nil on success.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	kind := r.Kind
	if kind == "" {
		kind = apperr.KindTransport
	}
	return apperr.New(kind, r.Status, r.Error)
}

// Client is an HTTP client for the artisan API.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
}

// New creates a new API client. The timeout comes from cfg and is enforced per
// call through the request context.
func New(cfg config.Config) *Client {
	return NewWithHTTPClient(cfg, &http.Client{})
}

// NewWithHTTPClient creates a client over a caller-supplied http.Client.
// A non-positive timeout falls back to config.DefaultTimeout.
func NewWithHTTPClient(cfg config.Config, hc *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	return &Client{cfg: cfg, httpClient: hc}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() config.Config {
	return c.cfg
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) *Response {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) *Response {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) *Response {
	return c.Do(ctx, http.MethodPut, path, body, nil)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) *Response {
	return c.Do(ctx, http.MethodPatch, path, body, nil)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) *Response {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do executes one request against the configured base URL. Per-call headers
// override the defaults.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, headers map[string]string) *Response {
	start := time.Now()
	resp := c.do(ctx, method, path, body, headers)

	slog.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.Status,
		"error", resp.Error,
		"duration", time.Since(start).String(),
	)
	return resp
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, headers map[string]string) *Response {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return failure(fmt.Errorf("marshaling request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BuildURL(path), reader)
	if err != nil {
		return failure(fmt.Errorf("creating request: %w", err))
	}
	for k, v := range c.cfg.DefaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(err)
	}
	defer func() {
		if cerr := httpResp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return failure(fmt.Errorf("reading response: %w", err))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return &Response{
			Error:  fmt.Sprintf("HTTP error! status: %d", httpResp.StatusCode),
			Status: httpResp.StatusCode,
			Kind:   apperr.KindHTTPStatus,
			Body:   string(respBody),
		}
	}

	respBody = bytes.TrimSpace(respBody)
	if len(respBody) == 0 {
		return &Response{Status: httpResp.StatusCode}
	}
	if !json.Valid(respBody) {
		return failure(fmt.Errorf("decoding response: invalid JSON"))
	}

	return &Response{Data: json.RawMessage(respBody), Status: httpResp.StatusCode}
}

// failure maps a Go error to the timeout or transport envelope.
func failure(err error) *Response {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Response{Error: msgTimeout, Status: StatusTimeout, Kind: apperr.KindTimeout}
	}
	msg := msgUnknown
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Response{Error: msg, Status: StatusTransport, Kind: apperr.KindTransport}
}

// Decode unmarshals the payload of a successful response into T.
// ok is false when the response carries no payload.
func Decode[T any](r *Response) (v T, ok bool, err error) {
	if !r.HasData() {
		return v, false, nil
	}
	if err := json.Unmarshal(r.Data, &v); err != nil {
		return v, false, apperr.New(apperr.KindTransport, StatusTransport, err.Error())
	}
	return v, true, nil
}
