package dispatch

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Pomilon/linux-software-store/internal/history"
	"github.com/Pomilon/linux-software-store/pkg/store"
)

// fakeBackend answers queries from canned data and simulates operations
// by emitting a scripted progress stream.
type fakeBackend struct {
	source    store.Source
	installed []store.PackageRecord
	updates   []store.PackageRecord
	results   []store.PackageRecord

	progress []store.ProgressEvent
	outcome  store.OperationOutcome
	delay    time.Duration

	mu    sync.Mutex
	calls []string
}

func (f *fakeBackend) Name() store.Source  { return f.source }
func (f *fakeBackend) DisplayName() string { return string(f.source) }
func (f *fakeBackend) IsAvailable() bool   { return true }

func (f *fakeBackend) ListInstalled(_ context.Context) ([]store.PackageRecord, error) {
	return f.installed, nil
}

func (f *fakeBackend) CheckUpdates(_ context.Context) ([]store.PackageRecord, error) {
	return f.updates, nil
}

func (f *fakeBackend) Search(_ context.Context, _ string) ([]store.PackageRecord, error) {
	return f.results, nil
}

func (f *fakeBackend) Install(_ context.Context, rec store.PackageRecord, emit store.EmitFunc) store.OperationOutcome {
	return f.run("install "+rec.Name, emit)
}

func (f *fakeBackend) Uninstall(_ context.Context, rec store.PackageRecord, emit store.EmitFunc) store.OperationOutcome {
	return f.run("uninstall "+rec.Name, emit)
}

func (f *fakeBackend) run(call string, emit store.EmitFunc) store.OperationOutcome {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	for _, ev := range f.progress {
		emit(ev)
	}
	return f.outcome
}

// memoryRecorder collects history entries in memory.
type memoryRecorder struct {
	mu      sync.Mutex
	entries []*history.Entry
}

func (m *memoryRecorder) Record(entry *history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

// drain runs the dispatched work to completion and returns every event.
func drain(d *Dispatcher) []Event {
	d.Close()
	var events []Event
	for ev := range d.Events() {
		events = append(events, ev)
	}
	return events
}

func TestHandleListings(t *testing.T) {
	backend := &fakeBackend{
		source:    store.SourcePacman,
		installed: []store.PackageRecord{{Name: "vim", Source: store.SourcePacman}},
		updates:   []store.PackageRecord{{Name: "htop", Source: store.SourcePacman}},
	}
	d := New(store.NewCatalog(backend), nil, 16)

	d.Handle(context.Background(), Command{Command: CmdGetInstalled})
	d.Wait()
	d.Handle(context.Background(), Command{Command: CmdGetUpdates})

	events := drain(d)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	installed := events[0]
	if installed.Response != RespInstalledPackages || installed.Data == nil ||
		len(*installed.Data) != 1 || (*installed.Data)[0].Name != "vim" {
		t.Errorf("unexpected installed event: %+v", installed)
	}
	updates := events[1]
	if updates.Response != RespUpdatePackages || updates.Data == nil ||
		len(*updates.Data) != 1 || (*updates.Data)[0].Name != "htop" {
		t.Errorf("unexpected updates event: %+v", updates)
	}
}

func TestHandleSearch(t *testing.T) {
	backend := &fakeBackend{
		source: store.SourcePacman,
		installed: []store.PackageRecord{
			{Name: "Firefox", Description: "web browser", Source: store.SourcePacman},
			{Name: "Vim", Description: "a plain text editor", Source: store.SourcePacman},
		},
	}
	d := New(store.NewCatalog(backend), nil, 16)

	d.Handle(context.Background(), Command{Command: CmdSearch, Term: "fire", Scope: "installed"})

	events := drain(d)
	if len(events) != 1 || events[0].Response != RespSearchResults {
		t.Fatalf("unexpected events: %+v", events)
	}
	results := events[0].Data
	if results == nil || len(*results) != 1 || (*results)[0].Name != "Firefox" {
		t.Errorf("search results = %+v, want only Firefox", results)
	}
}

func TestInstallRelaysProgressInOrder(t *testing.T) {
	backend := &fakeBackend{
		source: store.SourcePacman,
		progress: []store.ProgressEvent{
			{ID: "vim", Name: "vim", Kind: store.OpInstall, Status: "Starting...", Percent: 0},
			{ID: "vim", Name: "vim", Kind: store.OpInstall, Status: "Downloading...", Percent: 40},
			{ID: "vim", Name: "vim", Kind: store.OpInstall, Status: "Completed", Percent: 100},
		},
		outcome: store.Succeeded(),
	}
	recorder := &memoryRecorder{}
	d := New(store.NewCatalog(backend), recorder, 16)

	d.Install(context.Background(), store.PackageRecord{Name: "vim", Source: store.SourcePacman})

	events := drain(d)
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5 (3 progress + completed + refresh): %+v", len(events), events)
	}

	wantStatus := []string{"Starting...", "Downloading...", "Completed"}
	for i, status := range wantStatus {
		ev := events[i]
		if ev.Response != RespOperationProgress || ev.Status != status {
			t.Errorf("events[%d] = %+v, want progress %q", i, ev, status)
		}
	}

	done := events[3]
	if done.Response != RespOperationCompleted || done.ID != "vim" {
		t.Errorf("completion event = %+v", done)
	}
	if done.Success == nil || !*done.Success {
		t.Error("completion should report success")
	}
	if events[4].Response != RespRefresh {
		t.Errorf("final event = %+v, want refresh", events[4])
	}

	if len(recorder.entries) != 1 || !recorder.entries[0].Success {
		t.Errorf("history entries = %+v, want one successful entry", recorder.entries)
	}
}

func TestUnknownSourceFailsFast(t *testing.T) {
	backend := &fakeBackend{source: store.SourcePacman, outcome: store.Succeeded()}
	d := New(store.NewCatalog(backend), nil, 16)

	d.Uninstall(context.Background(), store.PackageRecord{Name: "thing", Source: "snap"})

	events := drain(d)
	if len(events) != 2 {
		t.Fatalf("got %d events, want completion + refresh: %+v", len(events), events)
	}
	done := events[0]
	if done.Success == nil || *done.Success {
		t.Error("completion should report failure")
	}
	if done.Message != "Unknown source 'snap' for uninstall." {
		t.Errorf("message = %q", done.Message)
	}
	if len(backend.calls) != 0 {
		t.Errorf("backend was invoked: %v", backend.calls)
	}
}

func TestConcurrentOperationOnSameTargetIsBusy(t *testing.T) {
	backend := &fakeBackend{
		source:  store.SourcePacman,
		outcome: store.Succeeded(),
		delay:   100 * time.Millisecond,
	}
	d := New(store.NewCatalog(backend), nil, 16)

	d.Install(context.Background(), store.PackageRecord{Name: "vim", Source: store.SourcePacman})
	time.Sleep(20 * time.Millisecond) // let the first operation acquire the target
	d.Install(context.Background(), store.PackageRecord{Name: "vim", Source: store.SourcePacman})

	events := drain(d)

	var busy, succeeded int
	for _, ev := range events {
		if ev.Response != RespOperationCompleted {
			continue
		}
		if ev.Success != nil && *ev.Success {
			succeeded++
		} else if strings.HasPrefix(ev.Message, "Busy:") {
			busy++
		}
	}
	if succeeded != 1 || busy != 1 {
		t.Errorf("got %d successes and %d busy rejections, want 1 and 1: %+v", succeeded, busy, events)
	}
	if len(backend.calls) != 1 {
		t.Errorf("backend invoked %d times, want 1", len(backend.calls))
	}
}

func TestDistinctTargetsRunConcurrently(t *testing.T) {
	backend := &fakeBackend{source: store.SourcePacman, outcome: store.Succeeded()}
	d := New(store.NewCatalog(backend), nil, 16)

	d.Install(context.Background(), store.PackageRecord{Name: "vim", Source: store.SourcePacman})
	d.Install(context.Background(), store.PackageRecord{Name: "htop", Source: store.SourcePacman})

	events := drain(d)

	var completed int
	for _, ev := range events {
		if ev.Response == RespOperationCompleted && ev.Success != nil && *ev.Success {
			completed++
		}
	}
	if completed != 2 {
		t.Errorf("got %d successful completions, want 2", completed)
	}
}

func TestCancelledContextReportsCancelled(t *testing.T) {
	backend := &fakeBackend{source: store.SourcePacman, outcome: store.Failed("signal: killed")}
	d := New(store.NewCatalog(backend), nil, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Install(ctx, store.PackageRecord{Name: "vim", Source: store.SourcePacman})

	events := drain(d)
	if len(events) != 2 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	if events[0].Message != "Cancelled" {
		t.Errorf("message = %q, want Cancelled", events[0].Message)
	}
}

func TestCloseReturnsWithoutConsumer(t *testing.T) {
	backend := &fakeBackend{
		source: store.SourcePacman,
		progress: []store.ProgressEvent{
			{ID: "vim", Status: "Starting...", Percent: 0},
			{ID: "vim", Status: "Downloading...", Percent: 20},
			{ID: "vim", Status: "Installing...", Percent: 60},
			{ID: "vim", Status: "Verifying...", Percent: 80},
			{ID: "vim", Status: "Completed", Percent: 100},
		},
		outcome: store.Succeeded(),
	}
	d := New(store.NewCatalog(backend), nil, 1)

	d.Install(context.Background(), store.PackageRecord{Name: "vim", Source: store.SourcePacman})
	time.Sleep(20 * time.Millisecond) // let the worker fill the buffer and block

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while no consumer was reading events")
	}
}

func TestPostStatusEmitsStatusEvent(t *testing.T) {
	backend := &fakeBackend{source: store.SourcePacman}
	d := New(store.NewCatalog(backend), nil, 16)

	d.PostStatus("Checking required packages...")

	events := drain(d)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Response != RespOperationStatus || ev.Status != "Checking required packages..." {
		t.Errorf("status event = %+v", ev)
	}
}

func TestUnrecognizedCommandIgnored(t *testing.T) {
	backend := &fakeBackend{source: store.SourcePacman}
	d := New(store.NewCatalog(backend), nil, 16)

	d.Handle(context.Background(), Command{Command: "reboot"})

	if events := drain(d); len(events) != 0 {
		t.Errorf("got %d events, want none", len(events))
	}
}
