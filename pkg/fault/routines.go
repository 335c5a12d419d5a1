package fault

import (
	"runtime"
	"runtime/debug"
	"sync"
	"time"
	"unsafe"
)

// panicMessage is the fixed diagnostic carried by the PANIC fault.
const panicMessage = "have a nice day... ;-)"

// stackBudget is the stack ceiling installed before OVERFLOW recurses.
// Each recursion frame holds a buffer sized to an eighth of the budget, so
// the stack is exhausted well before the fixed recursion count runs out.
const (
	stackBudget       = 8 << 20
	overflowFrameSize = stackBudget / 8
	overflowDepth     = 40
)

// sink defeats dead-store elimination in the memory-corruption routines.
var sink byte

func injectPanic() {
	panic(panicMessage)
}

//go:noinline
func injectException() {
	var p *int
	*p = 0
}

func injectLoop() {
	for {
	}
}

//go:noinline
func recursiveLoop(depth int) byte {
	var buf [overflowFrameSize]byte
	for i := range buf {
		buf[i] = 0xff
	}
	if depth <= 1 {
		return buf[0]
	}
	// The XOR keeps a data dependency on both the recursive call and the
	// local buffer, so neither the frame nor the call can be elided.
	return recursiveLoop(depth-1) ^ buf[len(buf)-1]
}

func injectOverflow() {
	debug.SetMaxStack(stackBudget)
	sink = recursiveLoop(overflowDepth)
}

//go:noinline
func corruptStack(stack unsafe.Pointer) {
	for i := 0; i < 64; i++ {
		*(*byte)(unsafe.Add(stack, i)) = 0xff
	}
}

//go:noinline
func injectCorruptStack() {
	// 8 bytes of pointer-aligned local storage, overrun by 64 bytes of
	// sentinel to clobber whatever the frame keeps next to it.
	var data uint64
	corruptStack(unsafe.Pointer(&data))
	sink = byte(data)
}

// alignData is statically allocated so the misaligned pointer lands at a
// stable, deliberately odd address.
var alignData = [5]byte{1, 2, 3, 4, 5}

func injectUnalignedLoadStoreWrite() {
	p := (*uint32)(unsafe.Add(unsafe.Pointer(&alignData[0]), 1))
	val := uint32(0x12345678)
	if *p == 0 {
		val = 0x87654321
	}
	*p = val
}

func injectOverwriteAllocation() {
	const (
		allocLen   = 1020
		nominalLen = 1024
	)
	data := make([]byte, allocLen)
	// A 4-byte store at the nominal size, past the real bound.
	*(*uint32)(unsafe.Add(unsafe.Pointer(&data[0]), nominalLen)) = 0x12345678
	runtime.KeepAlive(data)
}

func injectWriteAfterFree() {
	const length = 1024
	data := make([]byte, length)
	addr := uintptr(unsafe.Pointer(&data[0]))
	data = nil
	runtime.GC()
	runtime.Gosched()
	stale := unsafe.Pointer(addr) //nolint:govet // the stale pointer is the fault
	for i := 0; i < length; i++ {
		*(*byte)(unsafe.Add(stale, i)) = 0x78
	}
}

func injectSoftLockup() {
	// Pinning the OS thread removes voluntary rescheduling; the bare spin
	// has no cooperation points for the scheduler to use.
	runtime.LockOSThread()
	for {
	}
}

func injectHungTask() {
	<-make(chan struct{})
}

var (
	sleepLock  sync.RWMutex
	atomicLock spinRWLock
)

func injectSchedulingWhileAtomic() {
	sleepLock.RLock()
	atomicLock.RLock()
	// Voluntary yield while holding a lock that forbids blocking.
	time.Sleep(time.Millisecond)
	atomicLock.RUnlock()
	sleepLock.RUnlock()
}

var (
	lock1 sync.Mutex
	lock2 sync.Mutex
)

func injectDeadlock() {
	// lock1 -> lock2
	lock1.Lock()
	lock2.Lock()
	lock2.Unlock()
	lock1.Unlock()

	// lock2 -> lock1. Sequential, so this returns; the inverted ordering is
	// what a lock-ordering detector should flag.
	lock2.Lock()
	lock1.Lock()
	lock1.Unlock()
	lock2.Unlock()
}
