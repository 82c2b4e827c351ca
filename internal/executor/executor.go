// Package executor handles backend command execution with privilege
// escalation and bounded timeouts.
package executor

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultQueryTimeout bounds non-streaming queries.
const DefaultQueryTimeout = 60 * time.Second

// DefaultOperationTimeout bounds streaming installs and uninstalls, which
// may legitimately run far longer than queries.
const DefaultOperationTimeout = 30 * time.Minute

// DefaultEscalationHelper wraps privileged system-backend commands.
const DefaultEscalationHelper = "pkexec"

// killWaitDelay bounds how long Wait keeps pipes open after the context
// cancels the process.
const killWaitDelay = 5 * time.Second

// configureKill makes context cancellation terminate the whole process
// group, not just the immediate child. Backend commands run behind a
// wrapper (pkexec, sh), and the wrapped grandchild inherits the output
// pipes; killing only the wrapper would leave it running and holding
// the pipes open past the deadline.
func configureKill(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = killWaitDelay
}

// Options configures an Executor.
type Options struct {
	QueryTimeout     time.Duration // 0 means DefaultQueryTimeout
	OperationTimeout time.Duration // 0 means DefaultOperationTimeout
	EscalationHelper string        // "" means DefaultEscalationHelper
	Verbose          bool
}

// Executor runs backend commands. The zero value is not usable; construct
// with New.
type Executor struct {
	queryTimeout time.Duration
	opTimeout    time.Duration
	helper       string
	verbose      bool
}

// New creates an Executor with the given options.
func New(opts Options) *Executor {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = DefaultOperationTimeout
	}
	if opts.EscalationHelper == "" {
		opts.EscalationHelper = DefaultEscalationHelper
	}
	return &Executor{
		queryTimeout: opts.QueryTimeout,
		opTimeout:    opts.OperationTimeout,
		helper:       opts.EscalationHelper,
		verbose:      opts.Verbose,
	}
}

// Privileged prepends the escalation helper to a command line.
func (e *Executor) Privileged(argv []string) []string {
	return append([]string{e.helper}, argv...)
}

// Output runs a command to completion under the query timeout, capturing
// stdout and stderr separately. On success it returns trimmed stdout; on
// failure the returned error is always a *RunError.
func (e *Executor) Output(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.queryTimeout)
	defer cancel()

	if e.verbose {
		log.Printf("running: %s %s", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	configureKill(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return strings.TrimSpace(stdout.String()), nil
	}

	return "", e.classify(err, ctx, name, stdout.String(), stderr.String())
}

// classify converts an exec failure into a *RunError.
func (e *Executor) classify(err error, ctx context.Context, name, stdout, stderr string) *RunError {
	runErr := &RunError{
		Command: name,
		Output:  strings.TrimSpace(stdout),
		Stderr:  strings.TrimSpace(stderr),
		Err:     err,
	}

	switch {
	case errors.Is(err, exec.ErrNotFound):
		runErr.Kind = KindNotFound
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		runErr.Kind = KindTimeout
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			runErr.Kind = KindExitNonZero
			runErr.ExitCode = exitErr.ExitCode()
		} else {
			runErr.Kind = KindUnexpected
		}
	}

	return runErr
}
