// Package store provides the unified package model shared by all backends.
package store

import "strings"

// Source identifies which backend a package record came from.
type Source string

const (
	// SourcePacman is the native system package manager.
	SourcePacman Source = "pacman"
	// SourceFlatpak is the sandboxed application distributor.
	SourceFlatpak Source = "flatpak"
)

// Status marks a record's availability in exploratory listings.
type Status string

// StatusAvailable tags records offered by the explore view.
const StatusAvailable Status = "available"

// PackageRecord is a backend-independent description of one package.
// Records are built fresh on every query and never cached.
type PackageRecord struct {
	Name        string `json:"name"`
	RawName     string `json:"raw_name,omitempty"` // backend-native ID, flatpak only
	Version     string `json:"version"`
	Description string `json:"description"`
	Source      Source `json:"source"`
	Icon        string `json:"icon"`
	Status      Status `json:"status,omitempty"`
}

// TargetID returns the identifier operations should act on: the
// backend-native ID when present, the display name otherwise.
func (p PackageRecord) TargetID() string {
	if p.Source == SourceFlatpak && p.RawName != "" {
		return p.RawName
	}
	return p.Name
}

// DisplayName derives a human-friendly name from a reverse-domain
// application ID: the component after the last dot, or the whole ID
// when it contains no dot.
func DisplayName(appID string) string {
	if i := strings.LastIndex(appID, "."); i >= 0 {
		return appID[i+1:]
	}
	return appID
}

// OperationKind is the type of a package operation.
type OperationKind string

const (
	// OpInstall installs a package.
	OpInstall OperationKind = "install"
	// OpUninstall removes a package.
	OpUninstall OperationKind = "uninstall"
)

// ProgressEvent is one incremental update emitted while an operation runs.
// Percent is non-decreasing within a single operation's stream.
type ProgressEvent struct {
	ID      string        `json:"id"`   // target identifier being acted on
	Name    string        `json:"name"` // display name
	Kind    OperationKind `json:"command"`
	Status  string        `json:"status"`
	Percent int           `json:"progress"`
}

// EmitFunc receives progress events as an operation produces them.
type EmitFunc func(ProgressEvent)

// OperationOutcome is the terminal result of an install or uninstall.
type OperationOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded returns a successful outcome.
func Succeeded() OperationOutcome {
	return OperationOutcome{Success: true, Message: "Success"}
}

// Failed returns a failure outcome with the given message.
func Failed(message string) OperationOutcome {
	return OperationOutcome{Success: false, Message: message}
}
