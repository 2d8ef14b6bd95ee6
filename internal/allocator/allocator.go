package allocator

import "sync"

// Allocator is one complete allocator universe: a single simulated program
// break (heap), its stats counters, and every free-list root that carves
// blocks from that break. All four facades -- FFMalloc/FFFree,
// BFMalloc/BFFree, TSMallocLock/TSFreeLock, TSMallocNoLock/TSFreeNoLock --
// are methods of one Allocator, since extending the break and growing the
// stats counters are the same operation no matter which facade triggers
// them; only the locking discipline around that operation differs.
//
// The package-level functions of the same names (facade.go) operate on a
// lazily-constructed default Allocator, for call-sites that want a plain
// global-function API; construct an Allocator directly with New for an
// isolated instance (what every test in this package does, to avoid
// cross-test interference on shared state).
type Allocator struct {
	cfg      *Config
	extender *heap
	stats    *segmentStats

	// singleRoot is shared by FFMalloc/FFFree and BFMalloc/BFFree: first-fit
	// and best-fit are two search policies over the same list. No lock
	// guards it -- the single-threaded facade is documented for
	// single-threaded use only.
	singleRoot freeList

	// globalRoot is TSMallocLock/TSFreeLock's root, guarded by globalMu.
	globalRoot freeList
	globalMu   sync.Mutex

	// locals holds one *LocalHeap per OS thread that has called
	// TSMallocNoLock/TSFreeNoLock, keyed by currentThreadID(). See
	// threadlocal.go.
	locals sync.Map
}

// New constructs an isolated Allocator: its own simulated break, its own
// stats counters, and empty free-list roots.
func New(opts ...Option) *Allocator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	stats := &segmentStats{}

	return &Allocator{
		cfg:      cfg,
		extender: newHeap(cfg, stats),
		stats:    stats,
	}
}

// DataSegmentSize returns the total number of bytes ever acquired from this
// Allocator's simulated program break. Monotonic non-decreasing.
func (a *Allocator) DataSegmentSize() uintptr {
	return a.stats.Size()
}

// DataSegmentFreeSpaceSize returns the number of bytes currently sitting on
// any of this Allocator's free lists. Accurate for the single-threaded and
// global-lock facades; advisory (may be racy with respect to any
// in-flight allocation on another thread) for the no-lock facade, whose
// per-thread roots are never all held under one lock at once.
func (a *Allocator) DataSegmentFreeSpaceSize() uintptr {
	return a.stats.FreeSpace()
}
