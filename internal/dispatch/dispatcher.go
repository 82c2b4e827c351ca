package dispatch

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Pomilon/linux-software-store/internal/history"
	"github.com/Pomilon/linux-software-store/pkg/store"
)

// Recorder persists completed operations. The history store satisfies
// it; a nil recorder disables persistence.
type Recorder interface {
	Record(entry *history.Entry) error
}

// Dispatcher runs queries and operations on worker goroutines and
// delivers their events through a single buffered channel. The channel
// is the only hand-off to the consumer, so delivery order within one
// operation matches emission order; streams of concurrent operations
// interleave arbitrarily.
type Dispatcher struct {
	catalog *store.Catalog
	history Recorder
	events  chan Event

	mu       sync.Mutex
	inFlight map[string]bool // target IDs with an operation running

	closing chan struct{}
	wg      sync.WaitGroup
}

// New builds a dispatcher over the catalog. The buffer bounds how far
// workers can run ahead of the consumer.
func New(catalog *store.Catalog, recorder Recorder, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		catalog:  catalog,
		history:  recorder,
		events:   make(chan Event, buffer),
		inFlight: make(map[string]bool),
		closing:  make(chan struct{}),
	}
}

// Events returns the outbound event channel. It is closed by Close.
func (d *Dispatcher) Events() <-chan Event {
	return d.events
}

// Handle dispatches one inbound command onto a worker goroutine and
// returns immediately. Unrecognized commands are ignored.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command) {
	switch cmd.Command {
	case CmdGetInstalled:
		d.spawn(func() {
			d.post(listingEvent(RespInstalledPackages, d.catalog.Installed(ctx)))
		})
	case CmdGetUpdates:
		d.spawn(func() {
			d.post(listingEvent(RespUpdatePackages, d.catalog.Updates(ctx)))
		})
	case CmdGetExplorePackages:
		d.spawn(func() {
			d.post(listingEvent(RespExplorePackages, d.catalog.Explore()))
		})
	case CmdSearch:
		term, scope := cmd.Term, store.SearchScope(cmd.Scope)
		d.spawn(func() {
			d.post(listingEvent(RespSearchResults, d.catalog.Search(ctx, term, scope)))
		})
	case CmdInstall:
		if cmd.Package != nil {
			d.Install(ctx, *cmd.Package)
		}
	case CmdUninstall:
		if cmd.Package != nil {
			d.Uninstall(ctx, *cmd.Package)
		}
	case CmdLog:
		log.Printf("ui: %s", cmd.Message)
	}
}

// Install starts an install for the record on a worker goroutine.
func (d *Dispatcher) Install(ctx context.Context, rec store.PackageRecord) {
	d.spawn(func() { d.runOperation(ctx, store.OpInstall, rec) })
}

// Uninstall starts an uninstall for the record on a worker goroutine.
func (d *Dispatcher) Uninstall(ctx context.Context, rec store.PackageRecord) {
	d.spawn(func() { d.runOperation(ctx, store.OpUninstall, rec) })
}

// Wait blocks until all in-flight workers have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close releases any workers blocked on a full event channel, waits for
// them to finish, and closes the channel. Events posted after Close
// starts may be discarded. No command may be handled after Close.
func (d *Dispatcher) Close() {
	close(d.closing)
	d.wg.Wait()
	close(d.events)
}

func (d *Dispatcher) spawn(work func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		work()
	}()
}

// post delivers an event to the consumer. When the buffer is full it
// blocks until there is room or Close begins, so a consumer that stops
// reading cannot wedge workers forever.
func (d *Dispatcher) post(ev Event) {
	select {
	case d.events <- ev:
		return
	default:
	}
	select {
	case d.events <- ev:
	case <-d.closing:
	}
}

// PostStatus publishes a transient status line, e.g. from bootstrap.
func (d *Dispatcher) PostStatus(status string) {
	d.post(statusEvent(status))
}

// runOperation drives one install or uninstall to completion: exactly
// one completion event, followed by one refresh request.
func (d *Dispatcher) runOperation(ctx context.Context, kind store.OperationKind, rec store.PackageRecord) {
	id := rec.TargetID()

	backend, ok := d.catalog.Backend(rec.Source)
	if !ok {
		d.finish(id, store.Failed(fmt.Sprintf("Unknown source '%s' for %s.", rec.Source, kind)))
		return
	}

	if !d.acquire(id) {
		d.finish(id, store.Failed(fmt.Sprintf("Busy: an operation is already in progress for '%s'.", id)))
		return
	}
	defer d.release(id)

	entry := history.NewEntry(kind, rec)
	emit := func(ev store.ProgressEvent) { d.post(progressEvent(ev)) }

	var outcome store.OperationOutcome
	switch kind {
	case store.OpInstall:
		outcome = backend.Install(ctx, rec, emit)
	case store.OpUninstall:
		outcome = backend.Uninstall(ctx, rec, emit)
	}

	if ctx.Err() == context.Canceled {
		outcome = store.Failed("Cancelled")
	}

	entry.Finish(outcome)
	if d.history != nil {
		if err := d.history.Record(entry); err != nil {
			log.Printf("warning: recording history: %v", err)
		}
	}

	d.finish(id, outcome)
}

func (d *Dispatcher) finish(id string, outcome store.OperationOutcome) {
	d.post(completedEvent(id, outcome))
	d.post(refreshEvent())
}

// acquire marks the target busy, failing if an operation already holds it.
func (d *Dispatcher) acquire(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight[id] {
		return false
	}
	d.inFlight[id] = true
	return true
}

func (d *Dispatcher) release(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inFlight, id)
}
