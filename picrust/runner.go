package picrust

import (
	"context"
	"os/exec"
)

// Runner abstracts command execution so the executer can be tested without
// a cluster.
type Runner interface {
	// Run executes the named command and waits for it to finish.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the named command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner is the default Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
