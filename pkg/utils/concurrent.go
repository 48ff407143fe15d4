package utils

import (
	"context"
	"sync"
)

// Worker is a function that processes a single item.
type Worker[T any, R any] func(ctx context.Context, item T) (R, error)

// WorkerPool runs a fixed number of goroutines over a batch of items.
//
// Goroutine lifecycle:
//   - workers are started when ProcessItems is called
//   - each worker drains an internal items channel until it is closed or the
//     context is cancelled
//   - ProcessItems blocks until every worker has returned
//
// Failures are isolated per item: one worker erroring (or panicking) does not
// cancel its siblings. Results keep input positions; callers that need an
// order must re-sort.
type WorkerPool[T any, R any] struct {
	numWorkers int
	worker     Worker[T, R]
}

// NewWorkerPool creates a pool with the given concurrency. A non-positive
// count falls back to a single worker.
func NewWorkerPool[T any, R any](numWorkers int, worker Worker[T, R]) *WorkerPool[T, R] {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &WorkerPool[T, R]{numWorkers: numWorkers, worker: worker}
}

// ProcessItems processes items concurrently and returns per-index results and
// errors. Panics in workers are recovered and converted to PanicError.
func (wp *WorkerPool[T, R]) ProcessItems(ctx context.Context, items []T) ([]R, []error) {
	if len(items) == 0 {
		return nil, nil
	}

	type indexed struct {
		item  T
		index int
	}

	itemsChan := make(chan indexed, len(items))
	for i, item := range items {
		itemsChan <- indexed{item: item, index: i}
	}
	close(itemsChan)

	results := make([]R, len(items))
	errs := make([]error, len(items))
	processed := make([]bool, len(items))
	var wg sync.WaitGroup
	var mu sync.Mutex // protects errs during panic recovery

	for i := 0; i < wp.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case it, ok := <-itemsChan:
					if !ok {
						return
					}
					processed[it.index] = true
					func() {
						defer RecoverWithCallback(func(err error) {
							mu.Lock()
							errs[it.index] = err
							mu.Unlock()
						})
						results[it.index], errs[it.index] = wp.worker(ctx, it.item)
					}()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	wg.Wait()

	// Items still queued when the context was cancelled never reached a
	// worker; their zero results must not read as successes.
	for i := range items {
		if !processed[i] && errs[i] == nil {
			errs[i] = ctx.Err()
		}
	}
	return results, errs
}
