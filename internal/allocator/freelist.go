package allocator

import "unsafe"

// freeList is a doubly-linked list whose nodes are the headers of
// currently-free blocks, sorted strictly by ascending header address.
// head and tail are the list endpoints; both nil iff the list is empty.
// Nodes live inside the managed heap bytes themselves (intrusive list) --
// no secondary allocator is ever involved in maintaining it.
type freeList struct {
	head *blockHeader
	tail *blockHeader
}

// locateInsertion finds where f belongs in address order: the node that
// would become its predecessor (nil if f belongs at the head) and the node
// that would become its successor (nil if f belongs at the tail).
func (fl *freeList) locateInsertion(f *blockHeader) (prev, next *blockHeader) {
	cur := fl.head
	for cur != nil && cur.addr() < f.addr() {
		prev = cur
		cur = cur.next
	}

	next = cur

	return prev, next
}

// add inserts f into the list in address order, then coalesces with
// whichever of its new immediate neighbours is physically adjacent. Both
// possible merges (into prev, into next) are tested independently against
// one survivor header, so three consecutive free blocks collapse into one
// in a single call.
func (fl *freeList) add(f *blockHeader) {
	if fl.head == nil {
		fl.head = f
		fl.tail = f
		f.next = nil
		f.prev = nil

		return
	}

	prev, next := fl.locateInsertion(f)
	f.prev = prev
	f.next = next

	if prev != nil {
		prev.next = f
	} else {
		fl.head = f
	}

	if next != nil {
		next.prev = f
	} else {
		fl.tail = f
	}

	fl.coalesce(f)
}

// coalesce merges f with a physically-adjacent prev neighbour, then with a
// physically-adjacent next neighbour (of whichever header survived the
// first merge), so three consecutive free blocks collapse into one in a
// single call.
func (fl *freeList) coalesce(f *blockHeader) {
	survivor := f

	if prev := survivor.prev; prev != nil && prev.adjacentNeighbour(survivor) {
		prev.size += headerSize + survivor.size
		prev.next = survivor.next

		if survivor.next != nil {
			survivor.next.prev = prev
		} else {
			fl.tail = prev
		}

		survivor.next = nil
		survivor.prev = nil
		survivor = prev
	}

	if next := survivor.next; next != nil && survivor.adjacentNeighbour(next) {
		survivor.size += headerSize + next.size
		survivor.next = next.next

		if next.next != nil {
			next.next.prev = survivor
		} else {
			fl.tail = survivor
		}

		next.next = nil
		next.prev = nil
	}
}

// remove unlinks b from the list, fixing up head/tail and neighbour
// pointers, and nulls b's links. Precondition: b is currently on this
// list.
func (fl *freeList) remove(b *blockHeader) {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		fl.head = b.next
	}

	if b.next != nil {
		b.next.prev = b.prev
	} else {
		fl.tail = b.prev
	}

	b.next = nil
	b.prev = nil
}

// split carves an allocated block of exactly size bytes from the low end
// of f; the residual occupies the high end and replaces f in the free
// list in place. Precondition: f.size > headerSize+size (callers must
// consume the block whole otherwise -- a zero-byte residual is never
// created).
func (fl *freeList) split(f *blockHeader, size uintptr, stats *segmentStats) *blockHeader {
	residualSize := f.size - size - headerSize
	residualAddr := f.addr() + headerSize + size
	residual := (*blockHeader)(unsafe.Pointer(residualAddr))
	residual.size = residualSize
	residual.prev = f.prev
	residual.next = f.next

	if f.prev != nil {
		f.prev.next = residual
	} else {
		fl.head = residual
	}

	if f.next != nil {
		f.next.prev = residual
	} else {
		fl.tail = residual
	}

	f.size = size
	f.prev = nil
	f.next = nil

	stats.subFree(headerSize + size)

	return f
}
