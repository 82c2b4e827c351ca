package executor

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log"
	"os/exec"
	"strings"
)

// Outcome is the terminal result of a streamed command.
type Outcome struct {
	Success bool
	Message string
}

// ReportFunc receives normalized progress updates as raw output lines
// are consumed. Calls happen in line order, from a single goroutine.
type ReportFunc func(status string, percent int)

// streamTailLines bounds how much trailing stdout a timeout report keeps.
const streamTailLines = 5

// Stream launches argv with piped stdout and stderr, derives progress
// updates from stdout lines, and waits for termination under the
// operation timeout. Stderr is drained and logged, never parsed. A
// missing executable fails immediately without reporting anything; on
// timeout the process is killed and the outcome carries partial output.
func (e *Executor) Stream(ctx context.Context, argv []string, report ReportFunc) Outcome {
	if len(argv) == 0 {
		return Outcome{Success: false, Message: "empty command"}
	}

	ctx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()

	if e.verbose {
		log.Printf("streaming: %s", strings.Join(argv, " "))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	configureKill(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Outcome{Success: false, Message: err.Error()}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Outcome{Success: false, Message: err.Error()}
	}

	if err := cmd.Start(); err != nil {
		runErr := e.classify(err, ctx, argv[0], "", "")
		return Outcome{Success: false, Message: runErr.Error()}
	}

	tracker := newProgressTracker()
	report(tracker.status, tracker.percent)

	// Drain stderr concurrently so the subprocess never blocks on a full
	// pipe. Its content only feeds error reporting and the log.
	var stderrBuf bytes.Buffer
	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		io.Copy(&stderrBuf, stderr) //nolint:errcheck
	}()

	var tail []string
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			tail = append(tail, line)
			if len(tail) > streamTailLines {
				tail = tail[1:]
			}
		}
		if tracker.Line(line) {
			report(tracker.status, tracker.percent)
		}
	}

	<-stderrDone
	waitErr := cmd.Wait()

	stderrText := strings.TrimSpace(stderrBuf.String())
	if stderrText != "" {
		log.Printf("stderr from %s: %s", argv[0], stderrText)
	}

	if waitErr != nil {
		runErr := e.classify(waitErr, ctx, argv[0], strings.Join(tail, "\n"), stderrText)
		// The stream must end on an error-tagged status, not a stale
		// progress line.
		if !tracker.errored() {
			tracker.status = errorStatusPrefix + runErr.Error()
			report(tracker.status, tracker.percent)
		}
		return Outcome{Success: false, Message: runErr.Error()}
	}

	if tracker.finish() {
		report(tracker.status, tracker.percent)
	}
	return Outcome{Success: true, Message: "Success"}
}
