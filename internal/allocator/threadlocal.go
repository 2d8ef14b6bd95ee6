package allocator

import "unsafe"

// LocalHeap is an explicit, per-goroutine allocation handle: a free-list
// root private to whoever holds the handle. Obtain one with
// (*Allocator).NewLocalHeap and retain it for the lifetime of the
// goroutine that will use it -- a block allocated through a LocalHeap must
// be freed through that same LocalHeap, or it will be spliced into a free
// list some other goroutine is concurrently walking without synchronization.
type LocalHeap struct {
	a    *Allocator
	root freeList
}

// NewLocalHeap creates a free-list root private to the caller. No lock
// guards root itself -- by construction only the goroutine holding this
// *LocalHeap ever touches it. The heap extension it falls back to on a
// miss is still the Allocator's shared extender, so that remains guarded
// by the extender's own narrow mutex (extendLocked).
func (a *Allocator) NewLocalHeap() *LocalHeap {
	return &LocalHeap{a: a}
}

// Malloc allocates size bytes from this goroutine's private root, always
// best-fit.
func (lh *LocalHeap) Malloc(size uintptr) (unsafe.Pointer, error) {
	return mallocFrom(&lh.root, lh.a.extender, lh.a.stats, size, bestFit, true)
}

// Free returns p, previously returned by Malloc on this same LocalHeap, to
// this goroutine's private root. A nil p is a no-op.
func (lh *LocalHeap) Free(p unsafe.Pointer) {
	freeTo(&lh.root, lh.a.stats, p)
}

// TSMallocNoLock keys a *LocalHeap off the calling OS thread id and
// allocates from it, with no lock held anywhere in the call. The caller
// MUST have called runtime.LockOSThread before the first call on a given
// goroutine and must not let that goroutine migrate across OS threads
// afterward -- otherwise two goroutines could observe the same thread id
// in sequence and share a root neither expects to share, or the same
// goroutine could be rescheduled mid-sequence onto a different thread and
// silently start touching another root. Portable, migration-safe code
// should prefer (*Allocator).NewLocalHeap directly.
func (a *Allocator) TSMallocNoLock(size uintptr) (unsafe.Pointer, error) {
	return a.localHeap().Malloc(size)
}

// TSFreeNoLock is TSMallocNoLock's free half. See its doc comment for the
// LockOSThread precondition.
func (a *Allocator) TSFreeNoLock(p unsafe.Pointer) {
	a.localHeap().Free(p)
}

func (a *Allocator) localHeap() *LocalHeap {
	tid := currentThreadID()

	if v, ok := a.locals.Load(tid); ok {
		return v.(*LocalHeap)
	}

	lh := a.NewLocalHeap()
	actual, _ := a.locals.LoadOrStore(tid, lh)

	return actual.(*LocalHeap)
}
