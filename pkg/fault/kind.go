package fault

// Kind identifies a fault primitive in the catalog.
type Kind string

// The fault catalog. The constant values are the wire names accepted by the
// control surfaces; parsing is exact and case-sensitive.
const (
	// KindNone is the sentinel for "no fault". Parse returns it for any
	// unrecognized input and Inject treats it as a no-op.
	KindNone Kind = "NONE"

	// KindPanic terminates the process with an unrecoverable panic.
	KindPanic Kind = "PANIC"
	// KindBug raises an assertion-style abort, distinguishable from PANIC.
	KindBug Kind = "BUG"
	// KindException performs a nil-pointer write.
	KindException Kind = "EXCEPTION"
	// KindLoop enters an unconditional infinite loop.
	KindLoop Kind = "LOOP"
	// KindOverflow recurses until the stack is exhausted.
	KindOverflow Kind = "OVERFLOW"
	// KindCorruptStack overruns a small stack buffer.
	KindCorruptStack Kind = "CORRUPT_STACK"
	// KindUnalignedLoadStoreWrite performs a misaligned 4-byte load and store.
	KindUnalignedLoadStoreWrite Kind = "UNALIGNED_LOAD_STORE_WRITE"
	// KindOverwriteAllocation writes past a heap allocation boundary.
	KindOverwriteAllocation Kind = "OVERWRITE_ALLOCATION"
	// KindWriteAfterFree writes through a pointer to reclaimed memory.
	KindWriteAfterFree Kind = "WRITE_AFTER_FREE"
	// KindSoftLockup busy-spins forever on a pinned OS thread.
	KindSoftLockup Kind = "SOFTLOCKUP"
	// KindHardLockup busy-spins forever with all signals masked.
	KindHardLockup Kind = "HARDLOCKUP"
	// KindHungTask blocks forever waiting on a condition that never arrives.
	KindHungTask Kind = "HUNG_TASK"
	// KindSchedulingWhileAtomic sleeps while holding a non-sleeping lock.
	KindSchedulingWhileAtomic Kind = "SCHEDULING_WHILE_ATOMIC"
	// KindDeadlock demonstrates a lock-ordering inversion, sequentially.
	KindDeadlock Kind = "DEADLOCK"
)

// String returns the wire name of the kind.
func (k Kind) String() string { return string(k) }

// Returns returns true for the kinds whose routine is expected to return
// control to the caller. Everything else crashes, hangs, or leaves the
// process in an undefined state.
func (k Kind) Returns() bool {
	switch k {
	case KindNone, KindDeadlock, KindSchedulingWhileAtomic:
		return true
	default:
		return false
	}
}
