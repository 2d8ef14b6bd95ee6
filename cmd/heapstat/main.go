// Command heapstat runs a small fixed workload over the allocator and
// prints its two aggregate counters. It is a demonstration harness, not a
// benchmark: it reports only the two counters the allocator package
// exposes, with no timing or throughput measurement.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	semver "github.com/Masterminds/semver/v3"

	"github.com/heapkit/freelistalloc/internal/allocator"
)

// minGoConstraint documents the lowest toolchain this package's build tags
// (heap_unix.go, heap_other.go, threadid_linux.go) were written against.
const minGoConstraint = ">= 1.21.0"

func main() {
	policy := flag.String("policy", "bestfit", "allocation policy to demonstrate: firstfit or bestfit")
	facade := flag.String("facade", "single", "facade to demonstrate: single, global, or local")
	minVersion := flag.String("min-version", "", "fail if the running Go toolchain is below this semver (e.g. 1.21.0)")
	verbose := flag.Bool("verbose", false, "enable debug logging of heap extension events")
	flag.Parse()

	if *minVersion != "" {
		if err := checkMinVersion(">= " + *minVersion); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	a := allocator.New(allocator.WithVerbose(*verbose))

	if err := runWorkload(a, *policy, *facade); err != nil {
		fmt.Fprintln(os.Stderr, "heapstat:", err)
		os.Exit(1)
	}

	fmt.Printf("data_segment_size=%d\n", a.DataSegmentSize())
	fmt.Printf("data_segment_free_space_size=%d\n", a.DataSegmentFreeSpaceSize())
}

func checkMinVersion(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid --min-version constraint %q: %w", constraint, err)
	}

	runtimeVer, err := semver.NewVersion(goToolchainVersion())
	if err != nil {
		return fmt.Errorf("could not parse running toolchain version: %w", err)
	}

	if !c.Check(runtimeVer) {
		return fmt.Errorf("running toolchain %s does not satisfy constraint %q", runtimeVer, constraint)
	}

	return nil
}

func runWorkload(a *allocator.Allocator, policy, facade string) error {
	const (
		n          = 64
		payloadMin = 8
		payloadMax = 256
	)

	sizes := make([]uintptr, n)
	for i := range sizes {
		sizes[i] = uintptr(payloadMin + (i*37)%(payloadMax-payloadMin))
	}

	malloc, free, err := resolveOps(a, policy, facade)
	if err != nil {
		return err
	}

	ptrs := make([]uintptr, 0, n)

	for _, size := range sizes {
		p, err := malloc(size)
		if err != nil {
			return fmt.Errorf("allocate %d bytes: %w", size, err)
		}

		ptrs = append(ptrs, uintptr(p))
		slog.Debug("heapstat: allocated", "bytes", size)
	}

	// Free every other block first so coalescing has adjacent free
	// neighbours to merge, then free the rest.
	for i := 0; i < len(ptrs); i += 2 {
		free(unsafeFromUintptr(ptrs[i]))
	}

	for i := 1; i < len(ptrs); i += 2 {
		free(unsafeFromUintptr(ptrs[i]))
	}

	return nil
}
