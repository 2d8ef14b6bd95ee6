package allocator

import "unsafe"

// FFMalloc allocates size bytes using the first-fit policy: the first free
// block with size >= the request is used, splitting it unless the residual
// would be empty. On a miss the heap extends. Single-threaded use only --
// see Allocator's singleRoot doc comment.
func (a *Allocator) FFMalloc(size uintptr) (unsafe.Pointer, error) {
	return mallocFrom(&a.singleRoot, a.extender, a.stats, size, firstFit, false)
}

// FFFree returns p, previously returned by FFMalloc or BFMalloc, to the
// single-threaded root. A nil p is a no-op.
func (a *Allocator) FFFree(p unsafe.Pointer) {
	freeTo(&a.singleRoot, a.stats, p)
}

// BFMalloc allocates size bytes using the best-fit policy: the smallest
// free block with size >= the request is used (short-circuiting on an
// exact match), splitting it unless the residual would be empty. On a miss
// the heap extends. Single-threaded use only -- see Allocator's singleRoot
// doc comment.
func (a *Allocator) BFMalloc(size uintptr) (unsafe.Pointer, error) {
	return mallocFrom(&a.singleRoot, a.extender, a.stats, size, bestFit, false)
}

// BFFree returns p, previously returned by FFMalloc or BFMalloc, to the
// single-threaded root. A nil p is a no-op.
func (a *Allocator) BFFree(p unsafe.Pointer) {
	freeTo(&a.singleRoot, a.stats, p)
}
