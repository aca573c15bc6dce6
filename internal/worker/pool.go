package worker

import (
	"context"
	"errors"
	"sync"
)

// Map runs task over inputs with at most workers goroutines. Results are
// returned in input order; failed inputs leave the zero value in their slot.
// All task errors, plus the context error if the context ended, are joined.
func Map[In, Out any](ctx context.Context, workers int, inputs []In, task func(context.Context, In) (Out, error)) ([]Out, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Out, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	idxCh := make(chan int)
	errCh := make(chan error, len(inputs))

	var wg sync.WaitGroup
	for range min(workers, len(inputs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				out, err := task(ctx, inputs[i])
				if err != nil {
					errCh <- err
					continue
				}
				results[i] = out
			}
		}()
	}

enqueueLoop:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break enqueueLoop
		case idxCh <- i:
		}
	}
	close(idxCh)

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		errs = append(errs, ctxErr)
	}

	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}
	return results, nil
}
