package allocator

import (
	"sync"
	"unsafe"
)

// defaultAllocator is the lazily-constructed, process-wide Allocator the
// package-level functions below operate on, for call-sites that want a
// plain global-function API instead of constructing their own Allocator.
var (
	defaultAllocator     *Allocator
	defaultAllocatorOnce sync.Once
)

func shared() *Allocator {
	defaultAllocatorOnce.Do(func() {
		defaultAllocator = New()
	})

	return defaultAllocator
}

// FFMalloc allocates size bytes first-fit from the default Allocator's
// single-threaded root. See (*Allocator).FFMalloc.
func FFMalloc(size uintptr) (unsafe.Pointer, error) {
	return shared().FFMalloc(size)
}

// FFFree returns p to the default Allocator's single-threaded root. See
// (*Allocator).FFFree.
func FFFree(p unsafe.Pointer) {
	shared().FFFree(p)
}

// BFMalloc allocates size bytes best-fit from the default Allocator's
// single-threaded root. See (*Allocator).BFMalloc.
func BFMalloc(size uintptr) (unsafe.Pointer, error) {
	return shared().BFMalloc(size)
}

// BFFree returns p to the default Allocator's single-threaded root. See
// (*Allocator).BFFree.
func BFFree(p unsafe.Pointer) {
	shared().BFFree(p)
}

// TSMallocLock allocates size bytes from the default Allocator's
// global-lock root. See (*Allocator).TSMallocLock.
func TSMallocLock(size uintptr) (unsafe.Pointer, error) {
	return shared().TSMallocLock(size)
}

// TSFreeLock returns p to the default Allocator's global-lock root. See
// (*Allocator).TSFreeLock.
func TSFreeLock(p unsafe.Pointer) {
	shared().TSFreeLock(p)
}

// TSMallocNoLock allocates size bytes from a per-OS-thread root on the
// default Allocator. See (*Allocator).TSMallocNoLock for the
// runtime.LockOSThread precondition.
func TSMallocNoLock(size uintptr) (unsafe.Pointer, error) {
	return shared().TSMallocNoLock(size)
}

// TSFreeNoLock returns p to a per-OS-thread root on the default Allocator.
// See (*Allocator).TSFreeNoLock for the runtime.LockOSThread precondition.
func TSFreeNoLock(p unsafe.Pointer) {
	shared().TSFreeNoLock(p)
}

// DataSegmentSize returns the total number of bytes the default Allocator
// has ever acquired from its simulated program break.
func DataSegmentSize() uintptr {
	return shared().DataSegmentSize()
}

// DataSegmentFreeSpaceSize returns the number of bytes currently sitting on
// any of the default Allocator's free lists.
func DataSegmentFreeSpaceSize() uintptr {
	return shared().DataSegmentFreeSpaceSize()
}
