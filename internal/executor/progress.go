package executor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Backend output carries no shared progress schema; these heuristics
// normalize the lines both tools actually print. Matchers apply in a
// fixed precedence per line, and the derived percentage never regresses
// within one stream.
var (
	fractionPattern = regexp.MustCompile(`\((\d+)/(\d+)\)`)
	percentPattern  = regexp.MustCompile(`(\d+)%`)
)

const errorStatusPrefix = "Error: "

// lifecycleStatuses maps case-insensitive output keywords to the
// normalized status shown while that phase runs.
var lifecycleStatuses = []struct {
	keyword string
	status  string
}{
	{"downloading", "Downloading..."},
	{"installing", "Installing..."},
	{"verifying", "Verifying..."},
	{"finishing", "Finishing..."},
}

// progressTracker folds raw output lines into (status, percent) updates.
type progressTracker struct {
	status  string
	percent int
}

func newProgressTracker() *progressTracker {
	return &progressTracker{status: "Starting..."}
}

// Line consumes one trimmed output line and reports whether the update
// it produced should be emitted.
func (t *progressTracker) Line(line string) bool {
	if line == "" {
		return false
	}
	lower := strings.ToLower(line)

	// Rule 1: bracketed item fraction, e.g. "(3/4)".
	if m := fractionPattern.FindStringSubmatch(line); m != nil {
		current, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		if total > 0 {
			t.status = fmt.Sprintf("Downloading item %d of %d", current, total)
			t.advance(100 * current / total)
			return true
		}
	}

	// Rule 2: lifecycle keywords set the status regardless of whether a
	// percentage follows on the same line.
	matchedLifecycle := false
	for _, lc := range lifecycleStatuses {
		if strings.Contains(lower, lc.keyword) {
			t.status = lc.status
			matchedLifecycle = true
			break
		}
	}

	// Rule 3: explicit percentage, subject to the monotonic guard. A
	// regressed percentage is suppressed outright; any lifecycle status
	// it set above still applies to later updates.
	if m := percentPattern.FindStringSubmatch(line); m != nil {
		if pct, err := strconv.Atoi(m[1]); err == nil {
			if pct > 100 {
				pct = 100
			}
			if pct < t.percent {
				return false
			}
			t.percent = pct
			return true
		}
	}

	// Rule 4: error lines are always surfaced immediately.
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
		t.status = errorStatusPrefix + line
		return true
	}

	// Rule 5: warnings update the status without forcing an emit.
	if strings.Contains(lower, "warning") {
		t.status = "Warning: " + line
		return false
	}

	// Rule 6: anything else becomes the status verbatim.
	if !matchedLifecycle {
		t.status = line
	}
	return true
}

// advance raises the percentage, never lowering it or passing 100.
func (t *progressTracker) advance(pct int) {
	if pct > 100 {
		pct = 100
	}
	if pct > t.percent {
		t.percent = pct
	}
}

// errored reports whether the current status carries an error tag.
func (t *progressTracker) errored() bool {
	return strings.HasPrefix(t.status, errorStatusPrefix)
}

// finish reports whether a final synthetic completion update is needed
// after the output stream closes, and applies it.
func (t *progressTracker) finish() bool {
	if t.percent >= 100 || t.errored() {
		return false
	}
	t.percent = 100
	t.status = "Completed"
	return true
}
