package tool

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for stdout/stderr to drain after the
// process is killed on timeout or cancellation.
const waitDelay = 5 * time.Second

// Result holds the captured output of a single invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int // -1 when the process never started or was killed.
	Elapsed  time.Duration
}

// Runner executes an invocation to completion.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs invocations as child processes.
type ExecRunner struct {
	// Timeout bounds each invocation; zero means no limit beyond ctx.
	Timeout time.Duration
	// Echo, when non-nil, receives stderr in real time as well as the
	// captured buffer (verbose mode).
	Echo io.Writer
}

// Run starts the process, waits for it to exit, and classifies failure.
// The child is always reaped before Run returns, including on timeout. On
// unix the child leads its own process group and cancellation kills the
// whole group, so processes it spawned do not outlive Run.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	if r.Echo != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, r.Echo)
	} else {
		cmd.Stderr = &stderrBuf
	}

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		ExitCode: -1,
		Elapsed:  time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err == nil {
		return res, nil
	}
	return res, classify(ctx, inv, res, err)
}

// classify maps a failed run onto one sentinel kind. Context expiry wins
// over the exit status because a killed process reports "signal: killed".
func classify(ctx context.Context, inv Invocation, res Result, err error) error {
	e := &Error{
		Command:  inv.String(),
		ExitCode: res.ExitCode,
		Stderr:   res.Stderr,
		Err:      err,
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		e.Kind = ErrToolTimeout
		e.Err = ctx.Err()
	case errors.Is(ctx.Err(), context.Canceled):
		e.Kind = ErrToolCanceled
		e.Err = ctx.Err()
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		e.Kind = ErrToolNotFound
	case res.ExitCode == 127 || MatchNotFound(res.Stderr):
		e.Kind = ErrToolNotFound
	default:
		e.Kind = ErrToolFailed
	}
	return e
}
