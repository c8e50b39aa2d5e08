package trait

import (
	"github.com/hupe1980/traittab/internal/rank"
)

// Correlation computes the Spearman rank correlation coefficient between e
// and other over their shared traits.
//
// If no explicit trait list is given, the candidate list defaults to THIS
// entry's own trait names, not other's and not the union. The operation is
// therefore asymmetric in which traits are even considered: e.Correlation(o)
// and o.Correlation(e) may rank different trait sets even though the
// coefficient itself is symmetric for a fixed list. Pass an explicit list
// when comparing in both directions.
//
// A candidate trait is included only when both entries have a value for it;
// traits missing on either side are silently dropped. If nothing remains,
// ErrNoSharedTraits is returned.
//
// Both value sequences are rank-transformed with midranks for ties, using
// the total order of Value.Compare, and the coefficient is the Pearson
// correlation of the two rank sequences. The result is in [-1, 1], or NaN
// when a rank sequence is constant.
func (e *Entry) Correlation(other *Entry, traits ...string) (float64, error) {
	candidates := traits
	if len(candidates) == 0 {
		candidates = e.names
	}

	var xs, ys []Value
	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		sv, ok := e.traits[name]
		if !ok {
			continue
		}
		ov, ok := other.traits[name]
		if !ok {
			continue
		}
		xs = append(xs, sv)
		ys = append(ys, ov)
	}

	if len(xs) == 0 {
		return 0, ErrNoSharedTraits
	}

	rx := rank.Midranks(xs, Value.Compare)
	ry := rank.Midranks(ys, Value.Compare)
	return rank.Pearson(rx, ry), nil
}
