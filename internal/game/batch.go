package game

import (
	"context"

	calcerr "github.com/thundergore/damage-calc/internal/errors"
	"golang.org/x/sync/errgroup"
)

// ExpectedDamageTotal sums the expected damage of the profiles in order.
// The first failing profile aborts the sum with its position wrapped in.
func ExpectedDamageTotal(profiles []WeaponProfile) (float64, error) {
	total := 0.0
	for i, p := range profiles {
		ed, err := p.ExpectedDamage()
		if err != nil {
			return 0, calcerr.Wrapf(err, "profile %d (%s)", i+1, p.Name)
		}
		total += ed
	}
	return total, nil
}

// EvaluateAll computes every profile's breakdown concurrently. Each profile
// is an independent pure computation, so the only coordination needed is the
// error group itself.
func EvaluateAll(ctx context.Context, profiles []WeaponProfile) ([]Breakdown, error) {
	results := make([]Breakdown, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range profiles {
		i, p := i, p // per-iteration copies; required before Go 1.22 loopvar semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := p.Evaluate()
			if err != nil {
				return calcerr.Wrapf(err, "profile %d (%s)", i+1, p.Name)
			}
			results[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
