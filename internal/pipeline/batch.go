package pipeline

import (
	"context"
	"sync"
)

// runBatch dispatches fn for indices 0..n-1 with at most concurrency calls
// in flight. Results land at their input index inside fn, so output order
// matches input order regardless of completion order. onProgress fires on
// every completion, success or failure. The first error is returned after
// all dispatched work drains.
func runBatch(ctx context.Context, n, concurrency int, onProgress func(), fn func(ctx context.Context, i int) error) error {
	if concurrency <= 0 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

dispatch:
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			setErr(err)
			break
		}

		select {
		case <-ctx.Done():
			setErr(ctx.Err())
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			err := fn(ctx, idx)
			if onProgress != nil {
				onProgress()
			}
			if err != nil {
				setErr(err)
			}
		}(i)
	}
	wg.Wait()

	return firstErr
}
