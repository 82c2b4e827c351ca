package history

import (
	"strings"
	"testing"
	"time"

	"github.com/Pomilon/linux-software-store/pkg/store"
)

func TestNewEntry(t *testing.T) {
	rec := store.PackageRecord{
		Name:    "firefox",
		RawName: "org.mozilla.firefox",
		Source:  store.SourceFlatpak,
	}

	entry := NewEntry(store.OpInstall, rec)

	if entry.ID == "" {
		t.Error("expected non-empty ID")
	}
	if entry.Operation != store.OpInstall {
		t.Errorf("Operation = %q, want %q", entry.Operation, store.OpInstall)
	}
	if entry.Source != store.SourceFlatpak {
		t.Errorf("Source = %q, want %q", entry.Source, store.SourceFlatpak)
	}
	if entry.Package != "firefox" {
		t.Errorf("Package = %q, want firefox", entry.Package)
	}
	if entry.TargetID != "org.mozilla.firefox" {
		t.Errorf("TargetID = %q, want org.mozilla.firefox", entry.TargetID)
	}
	if time.Since(entry.Timestamp) > time.Minute {
		t.Error("timestamp should be recent")
	}
}

func TestEntryFinish(t *testing.T) {
	entry := NewEntry(store.OpUninstall, store.PackageRecord{Name: "vim", Source: store.SourcePacman})

	entry.Finish(store.Failed("Error: target not found: vim"))

	if entry.Success {
		t.Error("expected Success=false after failed outcome")
	}
	if entry.Message != "Error: target not found: vim" {
		t.Errorf("Message = %q", entry.Message)
	}

	entry.Finish(store.Succeeded())
	if !entry.Success {
		t.Error("expected Success=true after successful outcome")
	}
}

func TestEntrySummary(t *testing.T) {
	entry := NewEntry(store.OpInstall, store.PackageRecord{Name: "htop", Source: store.SourcePacman})
	entry.Finish(store.Succeeded())

	summary := entry.Summary()
	for _, want := range []string{"install", "htop", "pacman", "success"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() = %q, missing %q", summary, want)
		}
	}

	entry.Finish(store.Failed("boom"))
	if !strings.Contains(entry.Summary(), "failed") {
		t.Errorf("Summary() = %q, missing %q", entry.Summary(), "failed")
	}
}
