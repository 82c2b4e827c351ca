package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/Pomilon/linux-software-store/pkg/store"
)

func TestProgressEventKeepsZeroPercent(t *testing.T) {
	ev := progressEvent(store.ProgressEvent{
		ID:     "vim",
		Name:   "vim",
		Kind:   store.OpInstall,
		Status: "Starting...",
	})

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["response"] != "operationProgress" {
		t.Errorf("response = %v", decoded["response"])
	}
	if pct, ok := decoded["progress"]; !ok || pct != float64(0) {
		t.Errorf("progress = %v (present=%v), want 0 on the wire", pct, ok)
	}
	if decoded["command"] != "install" {
		t.Errorf("command = %v", decoded["command"])
	}
}

func TestCompletedEventKeepsFalseSuccess(t *testing.T) {
	ev := completedEvent("vim", store.Failed("exit code 1"))

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if success, ok := decoded["success"]; !ok || success != false {
		t.Errorf("success = %v (present=%v), want explicit false", success, ok)
	}
}

func TestCommandDecoding(t *testing.T) {
	line := `{"command":"install","package":{"name":"firefox","raw_name":"org.mozilla.firefox","version":"127.0","description":"","source":"flatpak","icon":"fas fa-globe"}}`

	var cmd Command
	if err := json.Unmarshal([]byte(line), &cmd); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cmd.Command != CmdInstall {
		t.Errorf("Command = %q", cmd.Command)
	}
	if cmd.Package == nil || cmd.Package.TargetID() != "org.mozilla.firefox" {
		t.Errorf("Package = %+v", cmd.Package)
	}
}

func TestListingEventNeverNullData(t *testing.T) {
	data, err := json.Marshal(listingEvent(RespSearchResults, nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) == `{"response":"searchResults"}` {
		t.Fatalf("empty results must serialize as an empty array, got %s", data)
	}

	var decoded struct {
		Data []store.PackageRecord `json:"data"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Data == nil {
		t.Error("data should decode to an empty slice")
	}
}
