package allocator

import "unsafe"

// bestFit walks list and returns the smallest block whose size is >= size,
// short-circuiting the moment it finds an exact match. Ties among
// equally-sized best candidates are broken by address order, since list
// traversal already proceeds head-to-tail in address order -- the first
// encountered wins.
func bestFit(list *freeList, size uintptr) *blockHeader {
	var candidate *blockHeader

	best := ^uintptr(0)

	for cur := list.head; cur != nil; cur = cur.next {
		if cur.size == size {
			return cur
		}

		if cur.size >= size && cur.size < best {
			best = cur.size
			candidate = cur
		}
	}

	return candidate
}

// firstFit walks list and returns the first block whose size is >= size.
func firstFit(list *freeList, size uintptr) *blockHeader {
	for cur := list.head; cur != nil; cur = cur.next {
		if cur.size >= size {
			return cur
		}
	}

	return nil
}

// mallocFrom is the malloc control flow shared by every facade: search list
// with find; on a hit either split the candidate or consume it whole,
// depending on whether a non-empty residual would remain; on a miss,
// extend the heap. locked selects the lock-acquiring heap extension over
// the already-locked one -- true for the no-lock facade, where no
// allocator-wide lock is held and the break is process-wide from that
// root's perspective.
func mallocFrom(list *freeList, h *heap, stats *segmentStats, size uintptr, find func(*freeList, uintptr) *blockHeader, locked bool) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}

	if candidate := find(list, size); candidate != nil {
		if candidate.size > headerSize+size {
			return payloadOf(list.split(candidate, size, stats)), nil
		}

		list.remove(candidate)
		stats.subFree(headerSize + candidate.size)

		return payloadOf(candidate), nil
	}

	var (
		hdr *blockHeader
		err error
	)

	if locked {
		hdr, err = h.extendLocked(size)
	} else {
		hdr, err = h.extend(size)
	}

	if err != nil {
		return nil, err
	}

	return payloadOf(hdr), nil
}

// freeTo returns a previously allocated block to list: a nil pointer is a
// no-op, otherwise the block is returned to list and the free-space
// counter grows by its full footprint.
func freeTo(list *freeList, stats *segmentStats, p unsafe.Pointer) {
	if p == nil {
		return
	}

	h := headerOf(p)
	stats.addFree(headerSize + h.size)
	list.add(h)
}
