package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Pomilon/linux-software-store/pkg/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)

	names := []string{"vim", "htop", "firefox"}
	for i, name := range names {
		entry := NewEntry(store.OpInstall, store.PackageRecord{Name: name, Source: store.SourcePacman})
		entry.Timestamp = time.Now().Add(time.Duration(i) * time.Second)
		entry.Finish(store.Succeeded())
		if err := s.Record(entry); err != nil {
			t.Fatalf("Record(%s): %v", name, err)
		}
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Newest first.
	want := []string{"firefox", "htop", "vim"}
	for i, name := range want {
		if entries[i].Package != name {
			t.Errorf("entries[%d].Package = %q, want %q", i, entries[i].Package, name)
		}
	}
}

func TestListLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		entry := NewEntry(store.OpUninstall, store.PackageRecord{Name: "pkg", Source: store.SourceFlatpak})
		entry.Timestamp = time.Now().Add(time.Duration(i) * time.Second)
		if err := s.Record(entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := s.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestRoundTripFields(t *testing.T) {
	s := openTestStore(t)

	entry := NewEntry(store.OpInstall, store.PackageRecord{
		Name:    "firefox",
		RawName: "org.mozilla.firefox",
		Source:  store.SourceFlatpak,
	})
	entry.Finish(store.Failed("Error: network unreachable"))
	if err := s.Record(entry); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := s.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	got := entries[0]
	if got.TargetID != "org.mozilla.firefox" {
		t.Errorf("TargetID = %q", got.TargetID)
	}
	if got.Success {
		t.Error("expected Success=false")
	}
	if got.Message != "Error: network unreachable" {
		t.Errorf("Message = %q", got.Message)
	}
}
