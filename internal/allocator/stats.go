package allocator

import "sync/atomic"

// segmentStats tracks the allocator's two aggregate counters: the total
// heap bytes ever acquired from the break, and the bytes currently sitting
// on some free list. Neither counter exposes anything richer than that --
// no per-size or per-caller breakdown is tracked.
//
// One segmentStats belongs to exactly one Allocator and is shared by every
// root that Allocator owns (the single-threaded root, the global-lock
// root, and every per-thread root): both counters are defined over every
// block the Allocator has ever touched, not per-root.
type segmentStats struct {
	size      atomic.Uint64
	freeSpace atomic.Uint64
}

func (s *segmentStats) addSize(n uintptr) {
	s.size.Add(uint64(n))
}

func (s *segmentStats) addFree(n uintptr) {
	s.freeSpace.Add(uint64(n))
}

func (s *segmentStats) subFree(n uintptr) {
	s.freeSpace.Add(^uint64(n - 1)) // atomic.Uint64 has no Sub; add the two's complement.
}

func (s *segmentStats) Size() uintptr {
	return uintptr(s.size.Load())
}

func (s *segmentStats) FreeSpace() uintptr {
	return uintptr(s.freeSpace.Load())
}
