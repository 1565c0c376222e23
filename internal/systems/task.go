package systems

import "sync"

// minChunk keeps tiny slices on the calling goroutine.
const minChunk = 64

// task runs fn over every item, split into contiguous chunks across at most
// workers goroutines. fn must only touch state owned by its item.
func task[T any](workers int, items []T, fn func(T)) {
	if workers <= 1 || len(items) <= minChunk {
		for _, item := range items {
			fn(item)
		}
		return
	}

	chunk := max((len(items)+workers-1)/workers, minChunk)

	var wg sync.WaitGroup
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		wg.Add(1)
		go func(part []T) {
			defer wg.Done()
			for _, item := range part {
				fn(item)
			}
		}(items[start:end])
	}
	wg.Wait()
}
