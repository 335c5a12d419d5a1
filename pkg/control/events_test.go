package control

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faultd/faultd/pkg/fault"
)

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub(4)
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(Event{ID: "1", Kind: "PANIC"})

	select {
	case ev := <-ch:
		assert.Equal(t, "PANIC", ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHubDropsWhenSubscriberFull(t *testing.T) {
	h := NewHub(1)
	ch, cancel := h.Subscribe()
	defer cancel()

	// Publish must never block, even with a full subscriber.
	h.Publish(Event{ID: "1"})
	h.Publish(Event{ID: "2"})

	ev := <-ch
	assert.Equal(t, "1", ev.ID)
	select {
	case extra := <-ch:
		t.Fatalf("expected second event dropped, got %v", extra)
	default:
	}
}

func TestHubCloseDropsSubscribers(t *testing.T) {
	h := NewHub(1)
	ch, _ := h.Subscribe()

	h.Close()

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")

	// Publishing after close is a no-op.
	h.Publish(Event{ID: "late"})
}

func TestEventsStreamDeliversTriggerIntent(t *testing.T) {
	srv, _ := newTestServer(t, WithEvents(4))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	// Trigger after the subscriber is connected.
	resp, err := ts.Client().Post(ts.URL+"/faults/trigger", "text/plain", strings.NewReader("LOOP"))
	require.NoError(t, err)
	resp.Body.Close()

	var ev Event
	require.NoError(t, wsjson.Read(ctx, conn, &ev))
	assert.Equal(t, string(fault.KindLoop), ev.Kind)
	assert.NotEmpty(t, ev.ID)
	assert.NotEmpty(t, ev.Source)
}

func TestEventsStreamSilentForNone(t *testing.T) {
	srv, _ := newTestServer(t, WithEvents(4))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	resp, err := ts.Client().Post(ts.URL+"/faults/trigger", "text/plain", strings.NewReader("BOGUS"))
	require.NoError(t, err)
	resp.Body.Close()

	readCtx, readCancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer readCancel()
	var ev Event
	err = wsjson.Read(readCtx, conn, &ev)
	assert.Error(t, err, "no event should be published for a no-op trigger")
}
