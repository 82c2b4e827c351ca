package executor

import "fmt"

// ErrorKind classifies a command failure so callers can branch on the
// cause without inspecting message strings.
type ErrorKind int

const (
	// KindUnexpected covers failures with no more specific classification.
	KindUnexpected ErrorKind = iota
	// KindNotFound means the executable could not be located.
	KindNotFound
	// KindTimeout means the command exceeded its wall-clock budget.
	KindTimeout
	// KindExitNonZero means the process ran but exited with a non-zero code.
	KindExitNonZero
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindTimeout:
		return "timeout"
	case KindExitNonZero:
		return "exit-non-zero"
	default:
		return "unexpected"
	}
}

// RunError is a structured command failure. Exactly one is produced per
// failed run; Output and Stderr hold whatever was captured before the
// failure (trimmed, possibly empty).
type RunError struct {
	Kind     ErrorKind
	Command  string // executable name
	ExitCode int    // valid only for KindExitNonZero
	Output   string // partial stdout, for timeouts
	Stderr   string
	Err      error // underlying error, if any
}

// Error implements the error interface.
func (e *RunError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("command %q not found in PATH", e.Command)
	case KindTimeout:
		return fmt.Sprintf("command %q timed out (partial output: %q, stderr: %q)", e.Command, e.Output, e.Stderr)
	case KindExitNonZero:
		stderr := e.Stderr
		if stderr == "" {
			stderr = "no stderr"
		}
		return fmt.Sprintf("command %q failed with exit code %d: %s", e.Command, e.ExitCode, stderr)
	default:
		return fmt.Sprintf("command %q failed unexpectedly: %v", e.Command, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.Err
}
