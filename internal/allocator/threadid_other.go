//go:build !linux

package allocator

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentThreadID is the non-Linux fallback: golang.org/x/sys/unix does not
// expose gettid(2) outside Linux, and no portable OS-thread-id primitive
// exists. It parses the goroutine id out of runtime.Stack, which is stable
// for the lifetime of a goroutine and, combined with the documented
// runtime.LockOSThread precondition on TSMallocNoLock/TSFreeNoLock,
// identifies one OS thread as reliably as gettid does on Linux.
func currentThreadID() int64 {
	var buf [64]byte

	n := runtime.Stack(buf[:], false)
	line := buf[:n]

	const prefix = "goroutine "
	if i := bytes.Index(line, []byte(prefix)); i >= 0 {
		line = line[i+len(prefix):]
	}

	if i := bytes.IndexByte(line, ' '); i >= 0 {
		line = line[:i]
	}

	id, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return -1
	}

	return id
}
