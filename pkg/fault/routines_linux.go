//go:build linux

package fault

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func injectBug() {
	// SIGABRT reads as an assertion failure to the surrounding crash
	// tooling, where PANIC reads as an explicit panic.
	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
	for {
	}
}

func injectHardLockup() {
	runtime.LockOSThread()
	// Masking every signal on the pinned thread blocks even the runtime's
	// preemption signal, so the spin below cannot be interrupted.
	var all unix.Sigset_t
	for i := range all.Val {
		all.Val[i] = ^uint64(0)
	}
	_ = unix.PthreadSigmask(unix.SIG_BLOCK, &all, nil)
	for {
	}
}
