package trait

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildEntry(t *testing.T, name string, traits map[string]string, order []string) *Entry {
	t.Helper()
	e := NewEntry(name)
	for _, k := range order {
		require.NoError(t, e.AddTrait(k, traits[k]))
	}
	return e
}

func TestCorrelation_PerfectMonotone(t *testing.T) {
	a := buildEntry(t, "a", map[string]string{"t1": "1", "t2": "2", "t3": "3"}, []string{"t1", "t2", "t3"})
	b := buildEntry(t, "b", map[string]string{"t1": "10", "t2": "200", "t3": "3000"}, []string{"t1", "t2", "t3"})

	r, err := a.Correlation(b)
	require.NoError(t, err)
	require.InDelta(t, 1.0, r, 1e-12)

	c := buildEntry(t, "c", map[string]string{"t1": "9", "t2": "5", "t3": "1"}, []string{"t1", "t2", "t3"})
	r, err = a.Correlation(c)
	require.NoError(t, err)
	require.InDelta(t, -1.0, r, 1e-12)
}

func TestCorrelation_Symmetry(t *testing.T) {
	a := buildEntry(t, "a", map[string]string{"t1": "1", "t2": "5", "t3": "2", "t4": "8"}, []string{"t1", "t2", "t3", "t4"})
	b := buildEntry(t, "b", map[string]string{"t1": "3", "t2": "1", "t3": "9", "t4": "4"}, []string{"t1", "t2", "t3", "t4"})

	traits := []string{"t1", "t2", "t3", "t4"}
	ab, err := a.Correlation(b, traits...)
	require.NoError(t, err)
	ba, err := b.Correlation(a, traits...)
	require.NoError(t, err)
	require.InDelta(t, ab, ba, 1e-12)
}

func TestCorrelation_Ties(t *testing.T) {
	// Midranks: a ranks are 1.5, 1.5, 3; b ranks are 1, 2, 3.
	a := buildEntry(t, "a", map[string]string{"t1": "1", "t2": "1", "t3": "2"}, []string{"t1", "t2", "t3"})
	b := buildEntry(t, "b", map[string]string{"t1": "1", "t2": "2", "t3": "3"}, []string{"t1", "t2", "t3"})

	r, err := a.Correlation(b)
	require.NoError(t, err)
	// Pearson of (1.5, 1.5, 3) vs (1, 2, 3) = sqrt(3)/2.
	require.InDelta(t, math.Sqrt(3)/2, r, 1e-12)
}

func TestCorrelation_MissingTraitsDropped(t *testing.T) {
	a := buildEntry(t, "a", map[string]string{"t1": "1", "t2": "2", "only_a": "7"}, []string{"t1", "t2", "only_a"})
	b := buildEntry(t, "b", map[string]string{"t1": "1", "t2": "2", "only_b": "9"}, []string{"t1", "t2", "only_b"})

	// only_a and only_b are silently dropped; the shared pair correlates
	// perfectly.
	r, err := a.Correlation(b)
	require.NoError(t, err)
	require.InDelta(t, 1.0, r, 1e-12)
}

func TestCorrelation_DefaultCandidatesAreAsymmetric(t *testing.T) {
	// a has traits {t1, t2}; b has {t1, t2, t3}. The default candidate
	// list comes from the receiver, so both directions still rank the
	// same shared set here, but the considered sets differ.
	a := buildEntry(t, "a", map[string]string{"t1": "1", "t2": "4"}, []string{"t1", "t2"})
	b := buildEntry(t, "b", map[string]string{"t1": "2", "t2": "8", "t3": "5"}, []string{"t1", "t2", "t3"})

	ab, err := a.Correlation(b)
	require.NoError(t, err)
	ba, err := b.Correlation(a)
	require.NoError(t, err)
	require.InDelta(t, ab, ba, 1e-12)
}

func TestCorrelation_NoSharedTraits(t *testing.T) {
	a := buildEntry(t, "a", map[string]string{"t1": "1"}, []string{"t1"})
	b := buildEntry(t, "b", map[string]string{"t9": "1"}, []string{"t9"})

	_, err := a.Correlation(b)
	require.ErrorIs(t, err, ErrNoSharedTraits)

	// An explicit list that neither side satisfies fails the same way.
	_, err = a.Correlation(b, "nope")
	require.ErrorIs(t, err, ErrNoSharedTraits)
}

func TestCorrelation_TextValuesRankByNaturalOrder(t *testing.T) {
	// Text ranks lexicographically: apple < banana < cherry.
	a := buildEntry(t, "a", map[string]string{"t1": "apple", "t2": "banana", "t3": "cherry"}, []string{"t1", "t2", "t3"})
	b := buildEntry(t, "b", map[string]string{"t1": "1", "t2": "2", "t3": "3"}, []string{"t1", "t2", "t3"})

	r, err := a.Correlation(b)
	require.NoError(t, err)
	require.InDelta(t, 1.0, r, 1e-12)
}

func TestCorrelation_ConstantRanksGiveNaN(t *testing.T) {
	a := buildEntry(t, "a", map[string]string{"t1": "5", "t2": "5", "t3": "5"}, []string{"t1", "t2", "t3"})
	b := buildEntry(t, "b", map[string]string{"t1": "1", "t2": "2", "t3": "3"}, []string{"t1", "t2", "t3"})

	r, err := a.Correlation(b)
	require.NoError(t, err)
	require.True(t, math.IsNaN(r))
}
