// Package history provides operation history tracking with BoltDB.
package history

import (
	"fmt"
	"time"

	"github.com/Pomilon/linux-software-store/pkg/store"
)

// Entry records one completed install or uninstall.
type Entry struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Operation store.OperationKind `json:"operation"`
	Source    store.Source        `json:"source"`
	Package   string              `json:"package"`   // display name
	TargetID  string              `json:"target_id"` // backend-native identifier acted on
	Success   bool                `json:"success"`
	Message   string              `json:"message,omitempty"`
}

// NewEntry creates a history entry for an operation about to run.
func NewEntry(op store.OperationKind, rec store.PackageRecord) *Entry {
	return &Entry{
		ID:        generateID(),
		Timestamp: time.Now(),
		Operation: op,
		Source:    rec.Source,
		Package:   rec.Name,
		TargetID:  rec.TargetID(),
	}
}

// Finish records the operation's outcome on the entry.
func (e *Entry) Finish(outcome store.OperationOutcome) {
	e.Success = outcome.Success
	e.Message = outcome.Message
}

// generateID generates a unique ID for the entry.
func generateID() string {
	return time.Now().Format("20060102150405.000000")
}

// FormatTime returns a human-readable timestamp.
func (e *Entry) FormatTime() string {
	return e.Timestamp.Format("2006-01-02 15:04:05")
}

// Summary returns a brief one-line description of the operation.
func (e *Entry) Summary() string {
	status := "success"
	if !e.Success {
		status = "failed"
	}
	return fmt.Sprintf("%s %s %s [%s] (%s)", e.FormatTime(), e.Operation, e.Package, e.Source, status)
}
