package pacman

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Pomilon/linux-software-store/pkg/store"
)

// searchHeaderPattern matches the first line of a pacman -Ss result
// block: an optional repository prefix, the name, the version, and an
// optional parenthesized group list.
var searchHeaderPattern = regexp.MustCompile(`^(?:[a-z0-9-]+/)?([^ ]+) ([^ ]+)(?: \(([^)]+)\))?$`)

// parseInstalled parses pacman -Qi output: blank-line separated blocks
// of "Key : Value" lines. Blocks without a Name are dropped.
func parseInstalled(output string) []store.PackageRecord {
	var records []store.PackageRecord

	for _, block := range strings.Split(output, "\n\n") {
		var rec store.PackageRecord
		for _, line := range strings.Split(block, "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			switch strings.TrimSpace(key) {
			case "Name":
				rec.Name = strings.TrimSpace(value)
			case "Version":
				rec.Version = strings.TrimSpace(value)
			case "Description":
				rec.Description = strings.TrimSpace(value)
			}
		}
		if rec.Name == "" {
			continue
		}
		rec.Source = store.SourcePacman
		rec.Icon = store.IconFor(rec.Name)
		records = append(records, rec)
	}

	return records
}

// parseUpdates parses pacman -Qu output: one whitespace-separated line
// per updatable package, name then new version.
func parseUpdates(output string) []store.PackageRecord {
	var records []store.PackageRecord

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name, version := fields[0], fields[1]
		records = append(records, store.PackageRecord{
			Name:        name,
			Version:     version,
			Description: fmt.Sprintf("Update available to %s", version),
			Source:      store.SourcePacman,
			Icon:        store.IconFor(name),
		})
	}

	return records
}

// parseSearch parses pacman -Ss output: blank-line separated blocks
// whose first line is "[repo/]name version [(group)]" and whose second
// line, when indented, is the description.
func parseSearch(output string) []store.PackageRecord {
	var records []store.PackageRecord

	for _, block := range strings.Split(output, "\n\n") {
		lines := strings.Split(block, "\n")
		if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
			continue
		}

		m := searchHeaderPattern.FindStringSubmatch(strings.TrimSpace(lines[0]))
		if m == nil {
			continue
		}

		rec := store.PackageRecord{
			Name:    m[1],
			Version: m[2],
			Source:  store.SourcePacman,
			Icon:    store.IconFor(m[1]),
		}
		if len(lines) > 1 && strings.HasPrefix(lines[1], " ") {
			rec.Description = strings.TrimSpace(lines[1])
		}
		records = append(records, rec)
	}

	return records
}
