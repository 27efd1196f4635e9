package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// GenerateCandidates runs n generations of the same description in
// parallel and returns the first one that builds. The remaining
// candidates are cancelled and record themselves as failed runs in
// the history. Sampling temperature is what makes the candidates
// differ.
func (p *Pipeline) GenerateCandidates(ctx context.Context, description string, n int) (*Report, error) {
	if n <= 1 {
		return p.Generate(ctx, description)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(ctx)
	results := make(chan *Report, n)

	var mu sync.Mutex
	var lastErr error

	for i := 0; i < n; i++ {
		eg.Go(func() error {
			report, err := p.Generate(egCtx, description)
			if err != nil {
				// A failed candidate does not sink the group.
				mu.Lock()
				lastErr = err
				mu.Unlock()
				return nil
			}
			select {
			case results <- report:
				cancel()
			default:
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	close(results)

	winner, ok := <-results
	if !ok {
		return nil, fmt.Errorf("all %d candidates failed: %w", n, lastErr)
	}
	return winner, nil
}
