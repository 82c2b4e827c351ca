package executor

import "testing"

type update struct {
	status  string
	percent int
}

// feed runs lines through a fresh tracker and collects emitted updates.
func feed(lines []string) []update {
	tracker := newProgressTracker()
	var emitted []update
	for _, line := range lines {
		if tracker.Line(line) {
			emitted = append(emitted, update{tracker.status, tracker.percent})
		}
	}
	return emitted
}

func TestFractionProgress(t *testing.T) {
	tests := []struct {
		line       string
		wantStatus string
		wantPct    int
	}{
		{":: Downloading foo-1.0 (50/100) ...", "Downloading item 50 of 100", 50},
		{"(3/4) upgrading bar", "Downloading item 3 of 4", 75},
		{"(1/1) done", "Downloading item 1 of 1", 100},
	}

	for _, tt := range tests {
		tracker := newProgressTracker()
		if !tracker.Line(tt.line) {
			t.Errorf("Line(%q) should emit", tt.line)
			continue
		}
		if tracker.status != tt.wantStatus {
			t.Errorf("Line(%q) status = %q, want %q", tt.line, tracker.status, tt.wantStatus)
		}
		if tracker.percent != tt.wantPct {
			t.Errorf("Line(%q) percent = %d, want %d", tt.line, tracker.percent, tt.wantPct)
		}
	}
}

func TestZeroTotalFractionIgnored(t *testing.T) {
	tracker := newProgressTracker()
	tracker.Line("(5/0) ...")
	if tracker.percent != 0 {
		t.Errorf("percent = %d, want 0 for a zero-total fraction", tracker.percent)
	}
}

func TestPercentMonotonicGuard(t *testing.T) {
	emitted := feed([]string{"10%", "5%", "42%"})

	var percents []int
	for _, u := range emitted {
		percents = append(percents, u.percent)
	}

	want := []int{10, 42}
	if len(percents) != len(want) {
		t.Fatalf("emitted percents = %v, want %v", percents, want)
	}
	for i := range want {
		if percents[i] != want[i] {
			t.Fatalf("emitted percents = %v, want %v", percents, want)
		}
	}
}

func TestPercentClampedAtFull(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"progress 150%", 100},
		{"(5/4) extra item", 100},
	}

	for _, tt := range tests {
		tracker := newProgressTracker()
		if !tracker.Line(tt.line) {
			t.Errorf("Line(%q) should emit", tt.line)
			continue
		}
		if tracker.percent != tt.want {
			t.Errorf("Line(%q) percent = %d, want %d", tt.line, tracker.percent, tt.want)
		}
	}
}

func TestLifecycleKeywords(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Downloading org.mozilla.firefox", "Downloading..."},
		{"Now INSTALLING the runtime", "Installing..."},
		{"verifying checksums", "Verifying..."},
		{"finishing up", "Finishing..."},
	}

	for _, tt := range tests {
		tracker := newProgressTracker()
		tracker.Line(tt.line)
		if tracker.status != tt.want {
			t.Errorf("Line(%q) status = %q, want %q", tt.line, tracker.status, tt.want)
		}
	}
}

func TestLifecycleWithPercent(t *testing.T) {
	tracker := newProgressTracker()
	if !tracker.Line("Downloading runtime 45%") {
		t.Fatal("line with percentage should emit")
	}
	if tracker.status != "Downloading..." {
		t.Errorf("status = %q, want %q", tracker.status, "Downloading...")
	}
	if tracker.percent != 45 {
		t.Errorf("percent = %d, want 45", tracker.percent)
	}
}

func TestErrorLine(t *testing.T) {
	tracker := newProgressTracker()
	tracker.Line("30%")
	if !tracker.Line("error: target not found: foo") {
		t.Fatal("error line should emit")
	}
	if tracker.status != "Error: error: target not found: foo" {
		t.Errorf("status = %q", tracker.status)
	}
	if tracker.percent != 30 {
		t.Errorf("percent = %d, want 30 (unchanged by error line)", tracker.percent)
	}
	if !tracker.errored() {
		t.Error("errored() should be true")
	}
}

func TestWarningDoesNotEmit(t *testing.T) {
	tracker := newProgressTracker()
	if tracker.Line("warning: config file saved as pacnew") {
		t.Error("warning line should not emit")
	}
	if tracker.status != "Warning: warning: config file saved as pacnew" {
		t.Errorf("status = %q", tracker.status)
	}
}

func TestPlainLineBecomesStatus(t *testing.T) {
	tracker := newProgressTracker()
	if !tracker.Line("resolving dependencies...") {
		t.Fatal("non-empty line should emit")
	}
	if tracker.status != "resolving dependencies..." {
		t.Errorf("status = %q", tracker.status)
	}
	if tracker.percent != 0 {
		t.Errorf("percent = %d, want 0", tracker.percent)
	}
}

func TestEmptyLineIgnored(t *testing.T) {
	tracker := newProgressTracker()
	if tracker.Line("") {
		t.Error("empty line should not emit")
	}
}

func TestFinishSynthesizesCompletion(t *testing.T) {
	tracker := newProgressTracker()
	tracker.Line("42%")

	if !tracker.finish() {
		t.Fatal("finish() should apply below 100%")
	}
	if tracker.percent != 100 || tracker.status != "Completed" {
		t.Errorf("got (%q, %d), want (Completed, 100)", tracker.status, tracker.percent)
	}
}

func TestFinishSkippedAfterError(t *testing.T) {
	tracker := newProgressTracker()
	tracker.Line("error: permission denied")

	if tracker.finish() {
		t.Error("finish() should not overwrite an error status")
	}
}

func TestFinishSkippedAtFullProgress(t *testing.T) {
	tracker := newProgressTracker()
	tracker.Line("100%")

	if tracker.finish() {
		t.Error("finish() should be a no-op at 100%")
	}
}
