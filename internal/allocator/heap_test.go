package allocator

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapExtendGrowsBreakAndStats(t *testing.T) {
	h := newHeap(&Config{ReservationSize: 4096}, &segmentStats{})

	hdr, err := h.extend(64)
	require.NoError(t, err)
	require.NotNil(t, hdr)
	assert.Equal(t, uintptr(64), hdr.size)
	assert.Nil(t, hdr.next)
	assert.Nil(t, hdr.prev)
	assert.Equal(t, headerSize+64, h.stats.Size())

	hdr2, err := h.extend(32)
	require.NoError(t, err)
	assert.Equal(t, headerSize+64+headerSize+32, h.stats.Size())
	assert.NotEqual(t, hdr.addr(), hdr2.addr())
	assert.True(t, hdr.addr() < hdr2.addr())
}

func TestHeapExtendOutOfMemory(t *testing.T) {
	orig := FatalHandler
	defer func() { FatalHandler = orig }()

	var captured error
	FatalHandler = func(err error) { captured = err }

	h := newHeap(&Config{ReservationSize: headerSize + 16}, &segmentStats{})

	_, err := h.extend(16)
	require.NoError(t, err)

	_, err = h.extend(16)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.ErrorIs(t, captured, ErrOutOfMemory, "exhausting the reservation must go through FatalHandler")
}

func TestHeapReservationLazy(t *testing.T) {
	h := newHeap(&Config{ReservationSize: 4096}, &segmentStats{})
	assert.Nil(t, h.res, "reservation must not be made until the first extend")

	_, err := h.extend(8)
	require.NoError(t, err)
	assert.NotNil(t, h.res)
}

// TestHeapExtendLockedConcurrentSafety exercises extendLocked directly with
// many concurrent callers; every returned header must occupy a disjoint,
// non-overlapping span.
func TestHeapExtendLockedConcurrentSafety(t *testing.T) {
	h := newHeap(&Config{ReservationSize: 1 << 20}, &segmentStats{})

	const (
		workers = 16
		each    = 32
	)

	results := make(chan *blockHeader, workers*each)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				hdr, err := h.extendLocked(16)
				if err != nil {
					t.Error(err)
					return
				}
				results <- hdr
			}
		}()
	}

	wg.Wait()
	close(results)

	seen := make(map[uintptr]bool)
	for hdr := range results {
		addr := hdr.addr()
		require.False(t, seen[addr], "two concurrent extends returned overlapping headers")
		seen[addr] = true
	}
	assert.Len(t, seen, workers*each)
}

// TestFatalHandlerIsOverridable documents the substitution pattern used to
// make a fatal boundary observable in a test binary instead of terminating
// the process outright.
func TestFatalHandlerIsOverridable(t *testing.T) {
	orig := FatalHandler
	defer func() { FatalHandler = orig }()

	var captured error
	FatalHandler = func(err error) { captured = err }

	FatalHandler(errors.New("boom"))
	assert.EqualError(t, captured, "boom")
}
