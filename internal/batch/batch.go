// Package batch attributes many samples against one frozen network. Samples
// are independent, so the work fans out over a fixed pool of workers; the
// shared network is only ever read. Cancellation is honored between
// samples, never inside a call, so a caller can never observe a partially
// composed matrix.
package batch

import (
	"context"
	"fmt"
	"sync"

	"piro/internal/engine"
	"piro/internal/model"
)

type Config struct {
	Workers  int
	Weighted bool

	// ContinueOnError keeps the batch going when a sample fails; failed
	// positions carry a nil result and their error in Result.Errors. When
	// unset the first failure aborts the whole batch.
	ContinueOnError bool
}

type Result struct {
	// Results holds one attribution per input sample, in input order.
	// With ContinueOnError set, failed positions are nil.
	Results []*engine.Result

	// Errors is parallel to Results; entries are nil for successful
	// samples. Empty unless ContinueOnError is set.
	Errors []error
}

// Run attributes every sample against the network. Results keep the input
// order regardless of worker count.
func Run(ctx context.Context, net model.Network, samples [][]float64, cfg Config) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("no samples to attribute")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(samples) {
		workers = len(samples)
	}

	type job struct {
		idx    int
		sample []float64
	}
	type outcome struct {
		idx int
		res *engine.Result
		err error
	}

	jobs := make(chan job)
	outcomes := make(chan outcome, len(samples))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes <- outcome{idx: j.idx, err: err}
					continue
				}
				res, err := engine.Attribute(net, j.sample, engine.Options{Weighted: cfg.Weighted})
				if err != nil {
					outcomes <- outcome{idx: j.idx, err: fmt.Errorf("sample %d: %w", j.idx, err)}
					continue
				}
				outcomes <- outcome{idx: j.idx, res: &res}
			}
		}()
	}

	for i := range samples {
		jobs <- job{idx: i, sample: samples[i]}
	}
	close(jobs)

	wg.Wait()
	close(outcomes)

	out := Result{
		Results: make([]*engine.Result, len(samples)),
		Errors:  make([]error, len(samples)),
	}
	for oc := range outcomes {
		out.Results[oc.idx] = oc.res
		out.Errors[oc.idx] = oc.err
	}

	if !cfg.ContinueOnError {
		for _, err := range out.Errors {
			if err != nil {
				return Result{}, err
			}
		}
	}
	return out, nil
}
