package allocator

import (
	"log/slog"
	"sync"
	"unsafe"
)

// reservation is the platform-specific backing store a heap extends into:
// one contiguous span of address space, reserved once, grown only by
// advancing a cursor within it (there is no sbrk(2) on Go's runtime; this
// is its replacement). heap_unix.go and heap_other.go each supply one
// implementation.
type reservation interface {
	// bytes returns the full reserved span. Pages beyond what has been
	// touched may not be physically backed yet; that is the platform's
	// business, not this package's.
	bytes() []byte
}

// newReservation is supplied per-platform (heap_unix.go, heap_other.go).
var newReservation func(size uintptr) (reservation, error)

// heap is the heap extender: the sole source of fresh backing storage for a
// free-list root. It wraps the platform primitive that advances a
// simulated program break: bump a cursor inside a pre-reserved buffer,
// fail when the buffer is exhausted. Unlike a bump-pointer arena, blocks
// handed out here are never reclaimed by resetting the cursor -- they
// return to a free list instead.
type heap struct {
	cfg   *Config
	mu    sync.Mutex // guards growth/extension of the break by extendLocked callers only
	res   reservation
	brk   uintptr // offset of the break within res.bytes()
	stats *segmentStats
}

func newHeap(cfg *Config, stats *segmentStats) *heap {
	return &heap{cfg: cfg, stats: stats}
}

func (h *heap) ensureReserved() error {
	if h.res != nil {
		return nil
	}

	res, err := newReservation(h.cfg.ReservationSize)
	if err != nil {
		return err
	}

	h.res = res

	return nil
}

// extend advances the break by H+size, initializes a fresh header with that
// size and nil links, and returns the new block's header. The caller
// already holds whatever lock protects its root (the global allocator
// mutex, or none for the single-threaded root), so no locking happens
// here.
func (h *heap) extend(size uintptr) (*blockHeader, error) {
	return h.doExtend(size)
}

// extendLocked is identical to extend but additionally serializes the
// underlying reservation growth under h.mu. Used by the no-lock facade,
// where no allocator-wide lock is held and the break is process-wide from
// that root's point of view.
func (h *heap) extendLocked(size uintptr) (*blockHeader, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.doExtend(size)
}

// doExtend treats any failure to grow the break as fatal: the underlying
// reservation primitive failing outright and the reservation being fully
// exhausted are both conditions this allocator has no recovery from, so
// both go through FatalHandler before the error is returned. The default
// FatalHandler never returns (it calls log.Fatalf); tests substitute a
// handler that records the error instead, so doExtend must still return
// the error afterward for that substitution to be observable.
func (h *heap) doExtend(size uintptr) (*blockHeader, error) {
	if err := h.ensureReserved(); err != nil {
		FatalHandler(err)

		return nil, err
	}

	footprint := headerSize + size
	buf := h.res.bytes()

	if h.brk+footprint > uintptr(len(buf)) {
		FatalHandler(ErrOutOfMemory)

		return nil, ErrOutOfMemory
	}

	hdr := (*blockHeader)(unsafe.Pointer(&buf[h.brk]))
	hdr.size = size
	hdr.next = nil
	hdr.prev = nil

	h.brk += footprint
	h.stats.addSize(footprint)

	if h.cfg.Verbose {
		slog.Debug("allocator: heap extended",
			"bytes", footprint, "break", h.brk)
	}

	return hdr, nil
}
