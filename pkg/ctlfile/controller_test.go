//go:build unix

package ctlfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faultd/faultd/pkg/fault"
)

// newTestController builds a controller over an inert catalog. The
// returned channel receives the kind of every dispatched (non-NONE)
// trigger.
func newTestController(t *testing.T) (*Controller, chan fault.Kind) {
	t.Helper()

	dispatched := make(chan fault.Kind, 16)
	var catOpts []fault.Option
	for _, name := range fault.New().Names() {
		kind := fault.Kind(name)
		catOpts = append(catOpts, fault.WithRoutine(kind, func() { dispatched <- kind }))
	}

	path := filepath.Join(t.TempDir(), "faultd.ctl")
	c := New(fault.New(catOpts...), path)
	require.NoError(t, c.Open())
	t.Cleanup(func() { c.Close() })
	return c, dispatched
}

func writeTrigger(t *testing.T, path, payload string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(payload)
	require.NoError(t, err)
}

func expectDispatch(t *testing.T, ch chan fault.Kind, want fault.Kind) {
	t.Helper()
	select {
	case got := <-ch:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatalf("trigger for %s never dispatched", want)
	}
}

func expectNoDispatch(t *testing.T, ch chan fault.Kind) {
	t.Helper()
	select {
	case got := <-ch:
		t.Fatalf("unexpected dispatch of %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestOpenCreatesPipeAndListing(t *testing.T) {
	c, _ := newTestController(t)

	info, err := os.Stat(c.Path())
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeNamedPipe, "control file is not a pipe")

	data, err := os.ReadFile(c.ListPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, fault.New().Names(), lines)
}

func TestWriteDispatchesTrigger(t *testing.T) {
	c, dispatched := newTestController(t)

	writeTrigger(t, c.Path(), "DEADLOCK\n")
	expectDispatch(t, dispatched, fault.KindDeadlock)
}

func TestMultipleTriggersOnOneWriter(t *testing.T) {
	c, dispatched := newTestController(t)

	writeTrigger(t, c.Path(), "DEADLOCK\nSCHEDULING_WHILE_ATOMIC\n")
	expectDispatch(t, dispatched, fault.KindDeadlock)
	expectDispatch(t, dispatched, fault.KindSchedulingWhileAtomic)
}

func TestUnrecognizedTriggerIsNoop(t *testing.T) {
	c, dispatched := newTestController(t)

	writeTrigger(t, c.Path(), "BOGUS\n")
	expectNoDispatch(t, dispatched)
}

func TestOversizedTriggerRejected(t *testing.T) {
	c, dispatched := newTestController(t)

	writeTrigger(t, c.Path(), strings.Repeat("A", 40)+"\n")
	expectNoDispatch(t, dispatched)

	// The surface keeps working after a rejection.
	writeTrigger(t, c.Path(), "DEADLOCK\n")
	expectDispatch(t, dispatched, fault.KindDeadlock)
}

func TestNotifyCallback(t *testing.T) {
	dispatched := make(chan fault.Kind, 1)
	type intent struct {
		id, source string
		kind       fault.Kind
	}
	intents := make(chan intent, 1)

	path := filepath.Join(t.TempDir(), "faultd.ctl")
	cat := fault.New(fault.WithRoutine(fault.KindLoop, func() { dispatched <- fault.KindLoop }))
	c := New(cat, path, WithNotify(func(id string, kind fault.Kind, source string) {
		intents <- intent{id: id, kind: kind, source: source}
	}))
	require.NoError(t, c.Open())
	t.Cleanup(func() { c.Close() })

	writeTrigger(t, path, "LOOP\n")
	expectDispatch(t, dispatched, fault.KindLoop)

	select {
	case in := <-intents:
		assert.Equal(t, fault.KindLoop, in.kind)
		assert.Equal(t, "ctlfile", in.source)
		assert.NotEmpty(t, in.id)
	case <-time.After(time.Second):
		t.Fatal("notify callback never invoked")
	}
}

func TestCloseRemovesFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultd.ctl")
	c := New(fault.New(), path)
	require.NoError(t, c.Open())
	require.NoError(t, c.Close())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "pipe not removed")
	_, err = os.Stat(path + ListSuffix)
	assert.True(t, os.IsNotExist(err), "listing file not removed")
}

func TestOpenReplacesStalePipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faultd.ctl")

	first := New(fault.New(), path)
	require.NoError(t, first.Open())
	// Simulate a crashed run: files left behind, no Close.
	first.pipe.Close()

	second := New(fault.New(), path)
	require.NoError(t, second.Open())
	require.NoError(t, second.Close())
}
