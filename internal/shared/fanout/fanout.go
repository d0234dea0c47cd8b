// Package fanout runs a fixed number of upstream calls in parallel while
// keeping results addressable by input position. Array position is the only
// correlation key between parallel branches, so order preservation here is a
// correctness requirement for callers, not an optimization.
package fanout

import (
	"context"
	"sync"
)

// DefaultLimit caps in-flight upstream calls across multi-request operations.
const DefaultLimit = 3

// Result pairs one input's output with the error its branch produced.
type Result[T any] struct {
	Value T
	Err   error
}

// Map invokes fn once per index in [0, n) with at most limit calls in flight
// and returns results indexed identically to the inputs. A non-positive limit
// falls back to DefaultLimit. Branches are not cancelled when siblings fail;
// each runs to completion and reports its own error.
func Map[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) []Result[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	results := make([]Result[T], n)
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			value, err := fn(ctx, i)
			results[i] = Result[T]{Value: value, Err: err}
		}(i)
	}
	wg.Wait()
	return results
}
