//go:build !linux

package fault

import (
	"os"
	"runtime"
)

func injectBug() {
	// No portable SIGABRT-to-self; exit with the conventional abort status.
	os.Exit(134)
}

func injectHardLockup() {
	// Signal masking is linux-only; degrade to a pinned busy spin.
	runtime.LockOSThread()
	for {
	}
}
