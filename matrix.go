package traittab

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hupe1980/traittab/trait"
	"golang.org/x/sync/errgroup"
)

// CorrelationMatrix computes the symmetric matrix of pairwise Spearman
// coefficients for the given entries, restricted to the given trait list
// (every pair uses the same candidate set, avoiding the asymmetric default
// of Entry.Correlation). Pairs are computed concurrently, bounded by the
// number of CPUs.
//
// The diagonal is 1. Any pair without shared traits fails the whole call.
func CorrelationMatrix(ctx context.Context, entries []*trait.Entry, traits []string) ([][]float64, error) {
	n := len(entries)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := entries[i].Correlation(entries[j], traits...)
				if err != nil {
					return fmt.Errorf("correlate %q with %q: %w", entries[i].Name, entries[j].Name, err)
				}
				m[i][j] = r
				m[j][i] = r
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
