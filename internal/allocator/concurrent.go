package allocator

import "unsafe"

// TSMallocLock allocates size bytes from the global-lock root: the
// allocator mutex is held for the duration of the search/split/extend, so
// the heap extension underneath it never needs its own lock. Always
// best-fit -- the thread-safe facade trades away the first-fit policy in
// exchange for needing only one search loop to reason about under
// contention.
func (a *Allocator) TSMallocLock(size uintptr) (unsafe.Pointer, error) {
	a.globalMu.Lock()
	defer a.globalMu.Unlock()

	return mallocFrom(&a.globalRoot, a.extender, a.stats, size, bestFit, false)
}

// TSFreeLock returns p, previously returned by TSMallocLock, to the
// global-lock root under the allocator mutex. A nil p is a no-op.
func (a *Allocator) TSFreeLock(p unsafe.Pointer) {
	a.globalMu.Lock()
	defer a.globalMu.Unlock()

	freeTo(&a.globalRoot, a.stats, p)
}
