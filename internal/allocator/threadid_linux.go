//go:build linux

package allocator

import "golang.org/x/sys/unix"

// currentThreadID identifies the calling OS thread, used by
// TSMallocNoLock/TSFreeNoLock (threadlocal.go) to key a root. Valid only
// for a goroutine that has called runtime.LockOSThread. unix.Gettid is the
// real gettid(2) syscall, not a goroutine id.
func currentThreadID() int64 {
	return int64(unix.Gettid())
}
