// Package dispatch routes UI commands to backends and relays progress
// events back through a single ordered channel.
package dispatch

import "github.com/Pomilon/linux-software-store/pkg/store"

// Inbound command names.
const (
	CmdGetInstalled       = "getInstalled"
	CmdGetUpdates         = "getUpdates"
	CmdGetExplorePackages = "getExplorePackages"
	CmdSearch             = "search"
	CmdInstall            = "install"
	CmdUninstall          = "uninstall"
	CmdLog                = "log"
)

// Outbound response discriminators.
const (
	RespInstalledPackages  = "installedPackages"
	RespUpdatePackages     = "updatePackages"
	RespExplorePackages    = "explorePackages"
	RespSearchResults      = "searchResults"
	RespOperationStatus    = "operationStatus"
	RespOperationProgress  = "operationProgress"
	RespOperationCompleted = "operationCompleted"
	RespRefresh            = "refresh"
)

// Command is one inbound UI message. Fields beyond Command are populated
// depending on the command name.
type Command struct {
	Command string               `json:"command"`
	Term    string               `json:"term,omitempty"`
	Scope   string               `json:"scope,omitempty"`
	Package *store.PackageRecord `json:"package,omitempty"`
	Message string               `json:"message,omitempty"`
}

// Event is one outbound UI message, discriminated by Response. Optional
// fields use pointers where a zero value is meaningful on the wire
// (an empty listing, progress 0, success false).
type Event struct {
	Response string                 `json:"response"`
	Data     *[]store.PackageRecord `json:"data,omitempty"`
	ID       string                 `json:"id,omitempty"`
	Name     string                 `json:"name,omitempty"`
	Command  store.OperationKind    `json:"command,omitempty"`
	Status   string                 `json:"status,omitempty"`
	Progress *int                   `json:"progress,omitempty"`
	Success  *bool                  `json:"success,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

func listingEvent(response string, data []store.PackageRecord) Event {
	if data == nil {
		data = []store.PackageRecord{}
	}
	return Event{Response: response, Data: &data}
}

func statusEvent(status string) Event {
	return Event{Response: RespOperationStatus, Status: status}
}

func progressEvent(ev store.ProgressEvent) Event {
	percent := ev.Percent
	return Event{
		Response: RespOperationProgress,
		ID:       ev.ID,
		Name:     ev.Name,
		Command:  ev.Kind,
		Status:   ev.Status,
		Progress: &percent,
	}
}

func completedEvent(id string, outcome store.OperationOutcome) Event {
	success := outcome.Success
	return Event{
		Response: RespOperationCompleted,
		ID:       id,
		Success:  &success,
		Message:  outcome.Message,
	}
}

func refreshEvent() Event {
	return Event{Response: RespRefresh}
}
