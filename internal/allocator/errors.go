// Package allocator implements a user-space free-list allocator that manages
// a single process heap by extending a simulated program break, serving
// variable-sized requests, and recycling freed regions via an explicit,
// address-ordered free list. Two single-threaded policies (first-fit,
// best-fit) and two thread-safe facades (global-lock, per-thread root) are
// provided; see FFMalloc, BFMalloc, TSMallocLock and TSMallocNoLock.
package allocator

import (
	"errors"
	"log"
)

// ErrZeroSize is returned for a zero-byte allocation request, treated as an
// error rather than silently returning a dangling pointer or corrupting
// the free list.
var ErrZeroSize = errors.New("allocator: zero-size allocation")

// ErrOutOfMemory is returned when the heap extender's backing reservation is
// exhausted and cannot grow further. This is treated as fatal: it passes
// through FatalHandler before it is ever returned to a caller.
var ErrOutOfMemory = errors.New("allocator: heap extension failed")

// FatalHandler is invoked whenever the heap extender cannot grow the break
// at all -- either the reservation primitive itself failed, or the
// reservation is fully exhausted. Both conditions are unrecoverable for
// this allocator, so the default handler emits a diagnostic and terminates
// the process. Tests substitute a handler that records the error instead
// of calling os.Exit, which is the standard way to make a fatal boundary
// observable from a test binary.
var FatalHandler = func(err error) {
	log.Fatalf("allocator: fatal heap extension failure: %v", err)
}
