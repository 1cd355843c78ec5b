package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/playall/internal/models"
	"golang.org/x/time/rate"
)

// BatchOpts contains pacing settings for resolving many inputs.
type BatchOpts struct {
	Rate  float64 // Inputs started per second; <= 0 disables pacing
	Burst int     // Inputs allowed back to back (default: 1)
}

// Batch resolves each input in order and returns one result per input.
//
// Inputs are resolved strictly one after another; the limiter only spaces them out so free relays are
// not hammered. Blank lines and lines starting with # are skipped. A cancelled context stops the batch
// and returns the results gathered so far with the context error.
func (e *ResolveEngine) Batch(ctx context.Context, inputs []string, opts BatchOpts, progress chan<- ProgressUpdate) ([]models.Result, error) {
	pending := make([]string, 0, len(inputs))
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" || strings.HasPrefix(in, "#") {
			continue
		}
		pending = append(pending, in)
	}

	limiter := newLimiter(opts)
	results := make([]models.Result, 0, len(pending))

	for i, in := range pending {
		if err := limiter.Wait(ctx); err != nil {
			return results, fmt.Errorf("batch stopped after %d of %d inputs: %w", i, len(pending), err)
		}

		res := e.Run(ctx, in, nil)
		results = append(results, res)
		e.sendProgress(progress, batchItemUpdate(i+1, len(pending), res))
	}
	return results, nil
}

func newLimiter(opts BatchOpts) *rate.Limiter {
	if opts.Rate <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(opts.Rate), burst)
}
