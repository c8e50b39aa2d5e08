package picrust

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeRunner resolves tools to canned paths and records every command.
type fakeRunner struct {
	mu   sync.Mutex
	runs [][]string

	// bjobsOutputs is consumed one element per bjobs call; the last
	// element repeats.
	bjobsOutputs []string
	bjobsCalls   int
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, append([]string{name}, args...))
	return nil
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case "which":
		return []byte("/usr/bin/" + args[0] + "\n"), nil
	case "bjobs":
		out := ""
		if len(f.bjobsOutputs) > 0 {
			i := min(f.bjobsCalls, len(f.bjobsOutputs)-1)
			out = f.bjobsOutputs[i]
		}
		f.bjobsCalls++
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("unexpected command %q", name)
	}
}

func newTestExecuter(t *testing.T, runner *fakeRunner) *Executer {
	t.Helper()
	return NewExecuter(t.TempDir(),
		WithRunner(runner),
		WithSubmitLimit(rate.Inf),
		WithPollInterval(time.Millisecond, 4*time.Millisecond),
	)
}

func TestPredictTraits(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestExecuter(t, runner)

	job, err := e.PredictTraits(context.Background(), "ref.newick", "traits.tab", KindTrait)
	require.NoError(t, err)
	require.Equal(t, "picrust_cmd0", job.Name)
	require.Equal(t, filepath.Join(e.baseDir, "predicted_traits.tab"), job.Output)

	require.Len(t, runner.runs, 1)
	bsub := runner.runs[0]
	require.Equal(t, "bsub", bsub[0])
	require.Contains(t, bsub, "-J")
	require.Contains(t, bsub, "picrust_cmd0")

	// The chained command runs format, ASR, then prediction.
	super := bsub[len(bsub)-1]
	parts := strings.Split(super, "; ")
	require.Len(t, parts, 3)
	require.Contains(t, parts[0], "format_tree_and_trait_table.py")
	require.Contains(t, parts[0], "-t ref.newick")
	require.Contains(t, parts[0], "-i traits.tab")
	require.Contains(t, parts[1], "ancestral_state_reconstruction.py")
	require.Contains(t, parts[2], "predict_traits.py")
	require.True(t, strings.HasSuffix(parts[2], "-a"))
}

func TestPredictTraits_MarkerKind(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestExecuter(t, runner)

	job, err := e.PredictTraits(context.Background(), "ref.newick", "markers.tab", KindMarker)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(e.baseDir, "predicted_markers.tab"), job.Output)
}

func TestPredictTraits_UnknownKind(t *testing.T) {
	e := newTestExecuter(t, &fakeRunner{})

	_, err := e.PredictTraits(context.Background(), "ref.newick", "traits.tab", TableKind("bogus"))
	require.Error(t, err)
}

func TestPredictMetagenome(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestExecuter(t, runner)

	job, err := e.PredictMetagenome(context.Background(), "otu.biom", "copies.tab", "traits.tab")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(e.baseDir, "predicted_metagenome.tab"), job.Output)

	super := runner.runs[0][len(runner.runs[0])-1]
	parts := strings.Split(super, "; ")
	require.Len(t, parts, 2)
	require.Contains(t, parts[0], "normalize_by_copy_number.py")
	require.Contains(t, parts[1], "predict_metagenomes.py")
}

func TestJobNamesIncrementPerInstance(t *testing.T) {
	runner := &fakeRunner{}
	e := newTestExecuter(t, runner)

	ctx := context.Background()
	j1, err := e.PredictTraits(ctx, "t.newick", "t.tab", KindTrait)
	require.NoError(t, err)
	j2, err := e.PredictTraits(ctx, "t.newick", "t.tab", KindTrait)
	require.NoError(t, err)
	require.Equal(t, "picrust_cmd0", j1.Name)
	require.Equal(t, "picrust_cmd1", j2.Name)

	// A fresh executer owns its own counter.
	other := newTestExecuter(t, &fakeRunner{})
	j3, err := other.PredictTraits(ctx, "t.newick", "t.tab", KindTrait)
	require.NoError(t, err)
	require.Equal(t, "picrust_cmd0", j3.Name)
}

func TestWaitForJobs(t *testing.T) {
	runner := &fakeRunner{
		bjobsOutputs: []string{"JOBID USER ...\n123 me RUN", "123 me RUN", ""},
	}
	e := newTestExecuter(t, runner)

	err := e.WaitForJobs(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, runner.bjobsCalls)
}

func TestWaitForJobs_ContextCanceled(t *testing.T) {
	runner := &fakeRunner{
		bjobsOutputs: []string{"123 me RUN"},
	}
	e := newTestExecuter(t, runner)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := e.WaitForJobs(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
