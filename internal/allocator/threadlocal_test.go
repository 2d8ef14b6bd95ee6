package allocator

import (
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHeapRoundTrip(t *testing.T) {
	a := New()
	lh := a.NewLocalHeap()

	p, err := lh.Malloc(64)
	require.NoError(t, err)

	lh.Free(p)
	assert.Same(t, lh.root.head, lh.root.tail)
	assert.Equal(t, headerSize+64, a.DataSegmentFreeSpaceSize())
}

func TestLocalHeapsAreIndependent(t *testing.T) {
	a := New()
	lh1 := a.NewLocalHeap()
	lh2 := a.NewLocalHeap()

	p1, err := lh1.Malloc(32)
	require.NoError(t, err)
	lh1.Free(p1)

	assert.NotNil(t, lh1.root.head)
	assert.Nil(t, lh2.root.head, "freeing on lh1 must never be visible on lh2's root")
}

func TestLocalHeapFreeNilIsNoOp(t *testing.T) {
	a := New()
	lh := a.NewLocalHeap()

	before := a.DataSegmentFreeSpaceSize()
	lh.Free(nil)
	assert.Equal(t, before, a.DataSegmentFreeSpaceSize())
}

// TestTSNoLockPerThreadIsolation runs TSMallocNoLock/TSFreeNoLock
// concurrently from goroutines that each use their own per-OS-thread root,
// and checks that the free-space counter accounts for every block they
// freed. Each goroutine locks itself to its own OS thread for its entire
// lifetime, per the runtime.LockOSThread precondition documented on
// TSMallocNoLock.
func TestTSNoLockPerThreadIsolation(t *testing.T) {
	a := New()

	const workers = 8

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			p, err := a.TSMallocNoLock(24)
			if err != nil {
				t.Error(err)
				return
			}

			b := (*byte)(unsafe.Pointer(p))
			*b = 0xCD

			a.TSFreeNoLock(p)
		}()
	}

	wg.Wait()

	// Every goroutine freed what it allocated on its own root, so the
	// total free space must equal the total handed out -- even though it
	// is scattered across as many roots as distinct OS threads were used.
	assert.Equal(t, a.DataSegmentSize(), a.DataSegmentFreeSpaceSize())
}

func TestTSNoLockSameThreadReusesRoot(t *testing.T) {
	a := New()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p1, err := a.TSMallocNoLock(16)
	require.NoError(t, err)
	a.TSFreeNoLock(p1)

	lh1 := a.localHeap()

	p2, err := a.TSMallocNoLock(16)
	require.NoError(t, err)
	a.TSFreeNoLock(p2)

	lh2 := a.localHeap()

	assert.Same(t, lh1, lh2, "repeated calls from the same OS thread must reuse the same LocalHeap")
	assert.Equal(t, p1, p2, "second allocation should reuse the freed block from the same thread's root")
}
