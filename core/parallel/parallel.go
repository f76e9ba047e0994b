// Package parallel splits row ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the row count above which row-wise matrix
// construction is worth fanning out.
const DefaultThreshold = 1000

// Parallelize splits [0, items) into one contiguous chunk per CPU and calls
// fn(start, end) for each chunk concurrently. It returns once every chunk is
// done. fn must only write to the rows of its own range.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) on the calling goroutine when
// items is at most threshold, and behaves like Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}

	Parallelize(items, fn)
}
