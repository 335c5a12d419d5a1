package cli

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFaults(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/faults", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("PANIC\nBUG\nEXCEPTION\n"))
	}))
	defer ts.Close()

	client := NewControlClient(ts.URL)
	names, err := client.ListFaults()
	require.NoError(t, err)
	assert.Equal(t, []string{"PANIC", "BUG", "EXCEPTION"}, names)
}

func TestTrigger(t *testing.T) {
	t.Parallel()

	var gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/faults/trigger", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc-123","kind":"NONE"}`))
	}))
	defer ts.Close()

	client := NewControlClient(ts.URL)
	result, err := client.Trigger("NONE")
	require.NoError(t, err)
	assert.Equal(t, "NONE", gotBody)
	assert.Equal(t, "abc-123", result.ID)
	assert.Equal(t, "NONE", result.Kind)
}

func TestTriggerRejected(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"error":"payload_too_large","message":"trigger payload exceeds 31 bytes"}`))
	}))
	defer ts.Close()

	client := NewControlClient(ts.URL)
	_, err := client.Trigger("X")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	assert.Equal(t, "payload_too_large", apiErr.ErrorCode)
	assert.False(t, apiErr.IsConnectionError())
}

func TestTriggerConnectionError(t *testing.T) {
	t.Parallel()

	// A server that is already gone, the usual state after a trigger.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewControlClient(ts.URL)
	_, err := client.Trigger("PANIC")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsConnectionError())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","session":"s-1","pid":42,"uptime":7,"faults":14}`))
	}))
	defer ts.Close()

	client := NewControlClient(ts.URL)
	status, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "s-1", status.Session)
	assert.Equal(t, 42, status.PID)
	assert.Equal(t, 14, status.Faults)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","uptime":1}`))
	}))
	defer ts.Close()

	client := NewControlClient(ts.URL)
	assert.NoError(t, client.Health())
}

func TestFormatConnectionError(t *testing.T) {
	t.Parallel()

	connErr := &APIError{ErrorCode: "connection_error", Message: "cannot connect"}
	assert.Contains(t, FormatConnectionError(connErr), "Is faultd running?")

	other := errors.New("boom")
	assert.Equal(t, "boom", FormatConnectionError(other))
}

func TestNewClientFromFlagPrecedence(t *testing.T) {
	t.Setenv("FAULTD_ADDR", "http://env:1")

	c := NewClientFromFlag("http://flag:2").(*controlClient)
	assert.Equal(t, "http://flag:2", c.baseURL)

	c = NewClientFromFlag("").(*controlClient)
	assert.Equal(t, "http://env:1", c.baseURL)
}
