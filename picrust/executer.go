package picrust

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TableKind selects which PICRUSt prediction workflow to run.
type TableKind string

const (
	// KindTrait predicts trait tables.
	KindTrait TableKind = "trait"
	// KindMarker predicts marker tables.
	KindMarker TableKind = "marker"
)

// Job identifies a submitted cluster job and the output it will produce.
type Job struct {
	// Name is the cluster job name.
	Name string
	// Output is the path of the predicted table the job writes.
	Output string
}

// jobPattern matches every job submitted by an Executer.
const jobPattern = "picrust_cmd*"

// Options configures an Executer.
type Options struct {
	// Runner executes external commands. Defaults to os/exec.
	Runner Runner

	// Logger receives submission and polling diagnostics. Nil disables
	// logging.
	Logger *slog.Logger

	// SubmitLimit throttles bsub submissions. Defaults to one per second;
	// cluster schedulers respond badly to bursts.
	SubmitLimit rate.Limit

	// PollInterval is the initial interval between bjobs polls. The
	// interval backs off up to MaxPollInterval while jobs keep running.
	PollInterval time.Duration

	// MaxPollInterval caps the poll backoff.
	MaxPollInterval time.Duration
}

// Executer runs PICRUSt workflows by chaining the PICRUSt command-line
// tools into a single shell command and submitting it to LSF via bsub.
//
// The job counter is owned by the instance; two executers sharing a base
// directory must also share job naming externally.
type Executer struct {
	baseDir string
	runner  Runner
	logger  *slog.Logger
	limiter *rate.Limiter

	pollInterval    time.Duration
	maxPollInterval time.Duration

	mu    sync.Mutex
	jobID int
}

// NewExecuter creates an executer whose analyses live under baseDir.
func NewExecuter(baseDir string, optFns ...func(*Options)) *Executer {
	opts := Options{
		Runner:          execRunner{},
		Logger:          slog.New(slog.DiscardHandler),
		SubmitLimit:     rate.Every(time.Second),
		PollInterval:    10 * time.Second,
		MaxPollInterval: time.Minute,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Runner == nil {
		opts.Runner = execRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.SubmitLimit == 0 {
		opts.SubmitLimit = rate.Inf
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.MaxPollInterval < opts.PollInterval {
		opts.MaxPollInterval = opts.PollInterval
	}

	return &Executer{
		baseDir:         baseDir,
		runner:          opts.Runner,
		logger:          opts.Logger,
		limiter:         rate.NewLimiter(opts.SubmitLimit, 1),
		pollInterval:    opts.PollInterval,
		maxPollInterval: opts.MaxPollInterval,
	}
}

// WithRunner overrides the command runner.
func WithRunner(r Runner) func(*Options) {
	return func(o *Options) {
		o.Runner = r
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithPollInterval sets the initial and maximum bjobs poll intervals.
func WithPollInterval(initial, ceiling time.Duration) func(*Options) {
	return func(o *Options) {
		o.PollInterval = initial
		o.MaxPollInterval = ceiling
	}
}

// WithSubmitLimit throttles bsub submissions.
func WithSubmitLimit(limit rate.Limit) func(*Options) {
	return func(o *Options) {
		o.SubmitLimit = limit
	}
}

// PredictTraits runs the predict_traits workflow for the given reference
// tree and trait table: format, ancestral state reconstruction, and
// prediction chained into one cluster job.
func (e *Executer) PredictTraits(ctx context.Context, tree, traitTable string, kind TableKind) (*Job, error) {
	var formatDir, predictOut string
	switch kind {
	case KindTrait:
		formatDir = filepath.Join(e.baseDir, "format_trait")
		predictOut = filepath.Join(e.baseDir, "predicted_traits.tab")
	case KindMarker:
		formatDir = filepath.Join(e.baseDir, "format_marker")
		predictOut = filepath.Join(e.baseDir, "predicted_markers.tab")
	default:
		return nil, fmt.Errorf("kind must be one of %q, %q, got %q", KindTrait, KindMarker, kind)
	}

	if err := os.MkdirAll(e.baseDir, 0o755); err != nil {
		return nil, err
	}

	fmtTable := filepath.Join(formatDir, "trait_table.tab")
	fmtTree := filepath.Join(formatDir, "reference_tree.newick")
	prunedTree := filepath.Join(formatDir, "pruned_tree.newick")
	asrOut := filepath.Join(formatDir, "asr.tab")

	formatCmd, err := e.formatCommand(ctx, traitTable, tree, formatDir)
	if err != nil {
		return nil, err
	}
	asrCmd, err := e.asrCommand(ctx, fmtTable, prunedTree, asrOut)
	if err != nil {
		return nil, err
	}
	predictCmd, err := e.predictTraitsCommand(ctx, fmtTable, asrOut, fmtTree, predictOut)
	if err != nil {
		return nil, err
	}

	job, err := e.submit(ctx, []string{formatCmd, asrCmd, predictCmd})
	if err != nil {
		return nil, err
	}
	job.Output = predictOut
	return job, nil
}

// PredictMetagenome normalizes an OTU table by marker copy number and
// predicts the metagenome against a trait table, as one cluster job.
func (e *Executer) PredictMetagenome(ctx context.Context, otuTable, copyNumbers, traitTable string) (*Job, error) {
	if err := os.MkdirAll(e.baseDir, 0o755); err != nil {
		return nil, err
	}

	normOut := filepath.Join(e.baseDir, "normalized_OTU_table.biom")
	predictOut := filepath.Join(e.baseDir, "predicted_metagenome.tab")

	normCmd, err := e.normalizeCommand(ctx, otuTable, copyNumbers, normOut)
	if err != nil {
		return nil, err
	}
	predictCmd, err := e.predictMetagenomeCommand(ctx, normOut, traitTable, predictOut)
	if err != nil {
		return nil, err
	}

	job, err := e.submit(ctx, []string{normCmd, predictCmd})
	if err != nil {
		return nil, err
	}
	job.Output = predictOut
	return job, nil
}

// WaitForJobs blocks until no submitted job is left running, polling bjobs
// with backoff, or until the context is canceled.
func (e *Executer) WaitForJobs(ctx context.Context) error {
	interval := e.pollInterval
	for {
		running, err := e.jobsRunning(ctx)
		if err != nil {
			return err
		}
		if !running {
			return nil
		}

		e.logger.Debug("jobs still running", "pattern", jobPattern, "next_poll", interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		interval *= 2
		if interval > e.maxPollInterval {
			interval = e.maxPollInterval
		}
	}
}

func (e *Executer) jobsRunning(ctx context.Context) (bool, error) {
	out, err := e.runner.Output(ctx, "bjobs", "-J", jobPattern)
	if err != nil {
		return false, fmt.Errorf("bjobs: %w", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// submit joins the chained commands and hands them to bsub under a fresh
// job name.
func (e *Executer) submit(ctx context.Context, cmds []string) (*Job, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	name := e.nextJobName()
	err := e.runner.Run(ctx, "bsub",
		"-o", filepath.Join(e.baseDir, "auto_picrust.out"),
		"-e", filepath.Join(e.baseDir, "auto_picrust.err"),
		"-J", name,
		strings.Join(cmds, "; "),
	)
	if err != nil {
		return nil, fmt.Errorf("bsub: %w", err)
	}

	e.logger.Info("job submitted", "job", name, "commands", len(cmds))
	return &Job{Name: name}, nil
}

func (e *Executer) nextJobName() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	name := fmt.Sprintf("picrust_cmd%d", e.jobID)
	e.jobID++
	return name
}

// toolPath resolves a PICRUSt script on the cluster PATH.
func (e *Executer) toolPath(ctx context.Context, tool string) (string, error) {
	out, err := e.runner.Output(ctx, "which", tool)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", tool, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (e *Executer) formatCommand(ctx context.Context, traitTable, tree, out string) (string, error) {
	exe, err := e.toolPath(ctx, "format_tree_and_trait_table.py")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("python %s -t %s -i %s -o %s", exe, tree, traitTable, out), nil
}

func (e *Executer) asrCommand(ctx context.Context, traitTable, tree, out string) (string, error) {
	exe, err := e.toolPath(ctx, "ancestral_state_reconstruction.py")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("python %s -i %s -t %s -o %s", exe, traitTable, tree, out), nil
}

func (e *Executer) predictTraitsCommand(ctx context.Context, traitTable, asrTable, tree, out string) (string, error) {
	exe, err := e.toolPath(ctx, "predict_traits.py")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("python %s -i %s -t %s -r %s -o %s -a", exe, traitTable, tree, asrTable, out), nil
}

func (e *Executer) normalizeCommand(ctx context.Context, otuTable, copyNumbers, out string) (string, error) {
	exe, err := e.toolPath(ctx, "normalize_by_copy_number.py")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("python %s -i %s -c %s -o %s", exe, otuTable, copyNumbers, out), nil
}

func (e *Executer) predictMetagenomeCommand(ctx context.Context, otuTable, traitTable, out string) (string, error) {
	exe, err := e.toolPath(ctx, "predict_metagenomes.py")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("python %s -i %s -c %s -o %s -f", exe, otuTable, traitTable, out), nil
}
