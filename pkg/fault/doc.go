// Package fault implements the fault catalog and dispatcher at the core of
// faultd.
//
// The catalog maps a fixed set of symbolic fault names to fault routines.
// Each routine deliberately induces one specific abnormal condition in the
// running process: a panic, an illegal memory access, stack or heap
// corruption, a permanent lockup, or a lock-ordering inversion. Routines are
// leaf operations with no shared state; they take no arguments, return
// nothing, and most of them never return at all.
//
// # Supported Faults
//
//   - PANIC: unrecoverable runtime panic with a fixed message
//   - BUG: assertion-style abort (SIGABRT), distinguishable from PANIC
//   - EXCEPTION: nil-pointer write
//   - LOOP: unconditional infinite loop
//   - OVERFLOW: bounded recursion sized to exhaust the stack
//   - CORRUPT_STACK: overruns a small stack buffer with sentinel bytes
//   - UNALIGNED_LOAD_STORE_WRITE: misaligned 4-byte load and store
//   - OVERWRITE_ALLOCATION: heap write past the allocation boundary
//   - WRITE_AFTER_FREE: write through a stale pointer after collection
//   - SOFTLOCKUP: pinned OS thread busy-spinning forever
//   - HARDLOCKUP: pinned OS thread with all signals masked, spinning forever
//   - HUNG_TASK: blocks forever on a channel that is never written
//   - SCHEDULING_WHILE_ATOMIC: sleeps while holding a non-sleeping lock
//   - DEADLOCK: acquires two locks in inverted order, sequentially
//
// # Usage
//
//	cat := fault.New()
//	for _, name := range cat.Names() {
//	    fmt.Println(name)
//	}
//	cat.Inject(cat.Parse("DEADLOCK")) // returns
//	cat.Inject(cat.Parse("PANIC"))    // does not return
//
// Callers must not assume control returns from Inject for any kind other
// than KindNone, KindDeadlock, and KindSchedulingWhileAtomic. faultd exists
// to validate external crash-detection infrastructure; the process it runs
// in is disposable.
package fault
