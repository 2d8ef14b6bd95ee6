package main

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/heapkit/freelistalloc/internal/allocator"
)

// resolveOps maps the --policy/--facade flag pair onto the matching pair of
// Allocator methods. The global and per-thread-root facades are always
// best-fit, so --policy is only meaningful with --facade=single.
func resolveOps(a *allocator.Allocator, policy, facade string) (malloc func(uintptr) (unsafe.Pointer, error), free func(unsafe.Pointer), err error) {
	switch facade {
	case "single":
		switch policy {
		case "firstfit":
			return a.FFMalloc, a.FFFree, nil
		case "bestfit":
			return a.BFMalloc, a.BFFree, nil
		default:
			return nil, nil, fmt.Errorf("unknown policy %q (want firstfit or bestfit)", policy)
		}
	case "global":
		return a.TSMallocLock, a.TSFreeLock, nil
	case "local":
		lh := a.NewLocalHeap()

		return lh.Malloc, lh.Free, nil
	default:
		return nil, nil, fmt.Errorf("unknown facade %q (want single, global, or local)", facade)
	}
}

// unsafeFromUintptr reconstructs a pointer this same process handed out
// earlier as a uintptr. Safe here only because the allocator's backing
// reservation is a plain byte slice kept alive by the Allocator for its
// entire lifetime -- it is never moved and never garbage collected out from
// under this pointer.
func unsafeFromUintptr(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr) //nolint:govet // see doc comment
}

// goToolchainVersion strips runtime.Version()'s leading "go" and any
// "devel" suffix down to a bare semver string semver.NewVersion accepts.
func goToolchainVersion() string {
	v := strings.TrimPrefix(runtime.Version(), "go")
	if i := strings.IndexByte(v, '-'); i >= 0 {
		v = v[:i]
	}

	return v
}
