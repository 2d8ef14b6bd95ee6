package allocator

import "unsafe"

// blockHeader precedes every block -- allocated or free -- in the heap.
// Allocation status is determined solely by free-list membership: next and
// prev are both nil while a block is allocated.
type blockHeader struct {
	size uintptr
	next *blockHeader
	prev *blockHeader
}

// headerSize is H: the fixed, compile-time-known footprint of a header.
const headerSize = unsafe.Sizeof(blockHeader{})

// payloadOf converts a header pointer into the payload pointer a caller
// receives from Malloc. p = h + H.
func payloadOf(h *blockHeader) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(h)) + headerSize)
}

// headerOf converts a payload pointer back into its header. h = p - H.
func headerOf(p unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(p) - headerSize))
}

// footprint is the total bytes a block occupies in the heap: header + payload.
func (h *blockHeader) footprint() uintptr {
	return headerSize + h.size
}

// end returns the address one past the last byte of this block's footprint.
func (h *blockHeader) end() uintptr {
	return uintptr(unsafe.Pointer(h)) + h.footprint()
}

// adjacentNeighbour reports whether other begins exactly where h ends --
// the physical-adjacency test used by coalescing (invariant 3).
func (h *blockHeader) adjacentNeighbour(other *blockHeader) bool {
	return other != nil && h.end() == uintptr(unsafe.Pointer(other))
}

// addr is the header's own address, used for the strict address ordering
// free lists maintain (invariant 2).
func (h *blockHeader) addr() uintptr {
	return uintptr(unsafe.Pointer(h))
}
