package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/faultd/faultd/internal/cliconfig"
)

// ControlClient provides methods for communicating with the faultd control API.
type ControlClient interface {
	// ListFaults returns the catalog names in declaration order.
	ListFaults() ([]string, error)
	// Trigger writes a trigger payload. For most fault kinds the server
	// dies before responding, which surfaces as a connection error.
	Trigger(payload string) (*TriggerResult, error)
	// Status returns the daemon status.
	Status() (*StatusResult, error)
	// Health checks if the daemon is running.
	Health() error
}

// TriggerResult contains the response to a trigger, for the kinds that return.
type TriggerResult struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// StatusResult contains daemon status.
type StatusResult struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Session string `json:"session"`
	PID     int    `json:"pid"`
	Uptime  int    `json:"uptime"`
	Faults  int    `json:"faults"`
}

// APIError represents an error response from the control API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsConnectionError reports whether the request never got a response.
// After a destructive trigger this is the expected outcome.
func (e *APIError) IsConnectionError() bool {
	return e.ErrorCode == "connection_error"
}

// controlClient implements ControlClient using HTTP.
type controlClient struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a control client.
type ClientOption func(*controlClient)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *controlClient) {
		c.httpClient.Timeout = timeout
	}
}

// NewControlClient creates a new control API client.
// The baseURL should be the control API base URL (e.g., "http://localhost:4270").
func NewControlClient(baseURL string, opts ...ClientOption) ControlClient {
	c := &controlClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromFlag creates a control client from a --addr flag value,
// falling back to FAULTD_ADDR and then the default port.
func NewClientFromFlag(flagAddr string, opts ...ClientOption) ControlClient {
	addr := flagAddr
	if addr == "" {
		addr = cliconfig.GetControlURL()
	}
	return NewControlClient(addr, opts...)
}

// ListFaults returns the catalog names in declaration order.
func (c *controlClient) ListFaults() ([]string, error) {
	resp, err := c.get("/faults")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(body), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// Trigger writes a trigger payload to the daemon.
func (c *controlClient) Trigger(payload string) (*TriggerResult, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/faults/trigger", strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			StatusCode: 0,
			ErrorCode:  "connection_error",
			Message:    fmt.Sprintf("no response from %s: %v", c.baseURL, err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result TriggerResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// Status returns the daemon status.
func (c *controlClient) Status() (*StatusResult, error) {
	resp, err := c.get("/status")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result StatusResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}

// Health checks if the daemon is running.
func (c *controlClient) Health() error {
	resp, err := c.get("/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	return nil
}

func (c *controlClient) get(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			StatusCode: 0,
			ErrorCode:  "connection_error",
			Message:    fmt.Sprintf("cannot connect to faultd at %s: %v", c.baseURL, err),
		}
	}
	return resp, nil
}

// parseError parses an error response from the API.
func (c *controlClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  errResp.Error,
			Message:    errResp.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  "unknown_error",
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, string(body)),
	}
}

// FormatConnectionError rewrites connection failures into an actionable hint.
func FormatConnectionError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsConnectionError() {
		return fmt.Sprintf("%s\n\nIs faultd running? Start it with: faultd serve", apiErr.Message)
	}
	return err.Error()
}
