package flatpak

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Pomilon/linux-software-store/pkg/store"
)

// updateRowPattern matches one pending-update row from
// `flatpak update --assumeno`: application ID, the stable branch, the
// current version and the new version.
var updateRowPattern = regexp.MustCompile(`^\s*([a-zA-Z0-9._-]+)\s+stable\s+([0-9.]+)\s+([0-9.]+)\s+`)

// newRecord builds a sandbox-app record from a reverse-domain ID. The
// raw identifier is only kept when it differs from the display name.
func newRecord(appID, version, description string) store.PackageRecord {
	name := store.DisplayName(appID)
	rec := store.PackageRecord{
		Name:        name,
		Version:     version,
		Description: description,
		Source:      store.SourceFlatpak,
		Icon:        store.IconFor(name),
	}
	if appID != name {
		rec.RawName = appID
	}
	return rec
}

// parseList parses `flatpak list --columns=application,version,description`:
// one tab-separated row per installed application.
func parseList(output string) []store.PackageRecord {
	var records []store.PackageRecord

	for _, line := range strings.Split(output, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			continue
		}
		records = append(records, newRecord(parts[0], parts[1], parts[2]))
	}

	return records
}

// parseUpdates parses the tabular output of a dry-run update, skipping
// summary and no-op lines.
func parseUpdates(output string) []store.PackageRecord {
	var records []store.PackageRecord

	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Total:") ||
			strings.Contains(line, "Nothing to do") ||
			strings.Contains(line, "Skipping") {
			continue
		}

		m := updateRowPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		appID, current, next := m[1], m[2], m[3]

		rec := newRecord(appID, next, fmt.Sprintf("Update available from %s to %s", current, next))
		records = append(records, rec)
	}

	return records
}

// parseSearch parses `flatpak search --columns=application,version,description`,
// skipping the header row.
func parseSearch(output string) []store.PackageRecord {
	var records []store.PackageRecord

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.ToLower(line), "application") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		records = append(records, newRecord(
			strings.TrimSpace(parts[0]),
			strings.TrimSpace(parts[1]),
			strings.TrimSpace(parts[2]),
		))
	}

	return records
}
