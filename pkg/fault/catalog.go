package fault

import (
	"errors"
	"strings"
)

// MaxTriggerLen is the maximum accepted length, in bytes, of a trigger
// payload after nothing has been stripped. Payloads longer than this are
// rejected before any parsing or dispatch happens.
const MaxTriggerLen = 31

// ErrTriggerTooLarge is returned by Trigger when the payload exceeds
// MaxTriggerLen. It is the only recoverable error the dispatcher reports.
var ErrTriggerTooLarge = errors.New("fault: trigger payload too large")

// Routine is a single fault primitive. Most routines never return.
type Routine func()

// entry pairs a kind with its routine so that name and behavior stay
// co-located in declaration order.
type entry struct {
	kind Kind
	run  Routine
}

// Catalog is the ordered, read-only mapping from fault names to routines.
// It is built once and safe for concurrent use; concurrent Inject calls are
// independent and uncoordinated.
type Catalog struct {
	entries  []entry
	routines map[Kind]Routine
}

// Option customizes a Catalog at construction time.
type Option func(*Catalog)

// WithRoutine replaces the routine body for a kind. Replacing KindNone has
// no effect since NONE never dispatches. Intended for tests that need to
// observe dispatch without executing a destructive body.
func WithRoutine(kind Kind, run Routine) Option {
	return func(c *Catalog) {
		if _, ok := c.routines[kind]; ok {
			c.routines[kind] = run
		}
	}
}

// New builds the fault catalog with the default routine bodies.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		entries: []entry{
			{KindPanic, injectPanic},
			{KindBug, injectBug},
			{KindException, injectException},
			{KindLoop, injectLoop},
			{KindOverflow, injectOverflow},
			{KindCorruptStack, injectCorruptStack},
			{KindUnalignedLoadStoreWrite, injectUnalignedLoadStoreWrite},
			{KindOverwriteAllocation, injectOverwriteAllocation},
			{KindWriteAfterFree, injectWriteAfterFree},
			{KindSoftLockup, injectSoftLockup},
			{KindHardLockup, injectHardLockup},
			{KindHungTask, injectHungTask},
			{KindSchedulingWhileAtomic, injectSchedulingWhileAtomic},
			{KindDeadlock, injectDeadlock},
		},
	}
	c.routines = make(map[Kind]Routine, len(c.entries))
	for _, e := range c.entries {
		c.routines[e.kind] = e.run
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Names returns the fault names in declaration order. The result is a fresh
// slice on every call; the order never changes within a process lifetime.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = string(e.kind)
	}
	return names
}

// Parse maps an input string to a Kind. Surrounding whitespace, including a
// trailing newline, is stripped before the exact, case-sensitive match.
// Unrecognized input yields KindNone; that is not an error condition.
func (c *Catalog) Parse(input string) Kind {
	name := strings.TrimSpace(input)
	for _, e := range c.entries {
		if name == string(e.kind) {
			return e.kind
		}
	}
	return KindNone
}

// Inject executes the routine for kind synchronously in the calling
// goroutine. KindNone (and any kind not in the catalog) is a no-op. For
// every other kind the caller must not assume control returns.
func (c *Catalog) Inject(kind Kind) {
	run, ok := c.routines[kind]
	if !ok {
		return
	}
	run()
}

// Trigger is the entry point shared by the control surfaces. It enforces
// the payload size bound, then parses and injects. The returned Kind is
// what was dispatched (KindNone for unrecognized input). When the payload
// is oversized no routine is invoked and ErrTriggerTooLarge is returned.
func (c *Catalog) Trigger(payload []byte) (Kind, error) {
	if len(payload) > MaxTriggerLen {
		return KindNone, ErrTriggerTooLarge
	}
	kind := c.Parse(string(payload))
	c.Inject(kind)
	return kind, nil
}
