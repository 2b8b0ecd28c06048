// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, items) into one contiguous range per CPU core and
// calls fn for each range in its own goroutine. It returns when every call
// has finished. Ranges never overlap, so fn may write to disjoint slots of a
// shared slice without locking.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) inline when items is at most
// threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
