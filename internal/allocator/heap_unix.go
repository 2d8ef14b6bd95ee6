//go:build linux || darwin

package allocator

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mmapReservation backs a heap with one anonymous mapping, reserved once at
// the size the caller asked for. The kernel backs pages with physical
// memory lazily, on first touch, so reserving a generous span costs no
// physical memory up front -- the same lazy-commit behaviour real
// sbrk-backed allocators rely on when they ask for more address space than
// they expect to touch.
type mmapReservation struct {
	buf []byte
}

func mmapNewReservation(size uintptr) (reservation, error) {
	buf, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("allocator: mmap reservation of %d bytes failed: %w", size, err)
	}

	return &mmapReservation{buf: buf}, nil
}

func (r *mmapReservation) bytes() []byte {
	return r.buf
}

func init() {
	newReservation = mmapNewReservation
}
