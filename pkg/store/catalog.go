package store

import (
	"context"
	"log"
	"strings"
)

// SearchScope selects which universe a search runs against.
type SearchScope string

const (
	// ScopeInstalled searches packages already on the system.
	ScopeInstalled SearchScope = "installed"
	// ScopeExplore searches the backends' remote catalogs.
	ScopeExplore SearchScope = "explore"
)

// Catalog aggregates backends into unified listings. Backend order is
// fixed at construction: the system backend first, then the sandbox
// backend. One backend failing never fails a listing; its contribution
// is simply empty.
type Catalog struct {
	backends []Backend
}

// NewCatalog builds a catalog over the given backends, in listing order.
func NewCatalog(backends ...Backend) *Catalog {
	return &Catalog{backends: backends}
}

// Backend returns the backend with the given source tag.
func (c *Catalog) Backend(source Source) (Backend, bool) {
	for _, b := range c.backends {
		if b.Name() == source {
			return b, true
		}
	}
	return nil, false
}

// Installed returns every installed package across all backends,
// preserving backend emission order.
func (c *Catalog) Installed(ctx context.Context) []PackageRecord {
	var records []PackageRecord
	for _, b := range c.backends {
		pkgs, err := b.ListInstalled(ctx)
		if err != nil {
			log.Printf("warning: %s: listing installed packages: %v", b.Name(), err)
			continue
		}
		records = append(records, pkgs...)
	}
	return records
}

// Updates returns every pending update across all backends.
func (c *Catalog) Updates(ctx context.Context) []PackageRecord {
	var records []PackageRecord
	for _, b := range c.backends {
		pkgs, err := b.CheckUpdates(ctx)
		if err != nil {
			log.Printf("warning: %s: checking updates: %v", b.Name(), err)
			continue
		}
		records = append(records, pkgs...)
	}
	return records
}

// Search filters packages by a case-insensitive substring match on name
// or description. Installed scope filters the installed listings; explore
// scope queries the backends' remote catalogs and deduplicates by display
// name, last backend wins on collision. An unknown scope yields nothing.
func (c *Catalog) Search(ctx context.Context, term string, scope SearchScope) []PackageRecord {
	var candidates []PackageRecord

	switch scope {
	case ScopeInstalled:
		candidates = c.Installed(ctx)
	case ScopeExplore:
		for _, b := range c.backends {
			pkgs, err := b.Search(ctx, term)
			if err != nil {
				log.Printf("warning: %s: searching for %q: %v", b.Name(), term, err)
				continue
			}
			candidates = append(candidates, pkgs...)
		}
		candidates = dedupeByName(candidates)
	default:
		return nil
	}

	return filterByTerm(candidates, term)
}

// Explore returns a fixed illustrative catalog. A production build would
// query both backends' remote listings here instead.
func (c *Catalog) Explore() []PackageRecord {
	return exploreCatalog()
}

// dedupeByName collapses records sharing a display name, keeping the
// last-seen record and the input's first-seen position.
func dedupeByName(records []PackageRecord) []PackageRecord {
	index := make(map[string]int, len(records))
	var unique []PackageRecord
	for _, rec := range records {
		if i, ok := index[rec.Name]; ok {
			unique[i] = rec
			continue
		}
		index[rec.Name] = len(unique)
		unique = append(unique, rec)
	}
	return unique
}

// filterByTerm keeps records whose name or description contains the term,
// case-insensitively.
func filterByTerm(records []PackageRecord, term string) []PackageRecord {
	term = strings.ToLower(term)
	var matched []PackageRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), term) ||
			strings.Contains(strings.ToLower(rec.Description), term) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// exploreCatalog is static demo data standing in for remote catalog
// queries (pacman -Slq, flatpak remote-ls --app).
func exploreCatalog() []PackageRecord {
	entries := []PackageRecord{
		{Name: "Vim", Version: "9.0", Description: "A highly configurable text editor for efficient text editing.", Source: SourcePacman},
		{Name: "Firefox", Version: "127.0", Description: "A fast, private and secure web browser.", Source: SourceFlatpak},
		{Name: "GIMP", Version: "2.10.34", Description: "GNU Image Manipulation Program, a free and open-source raster graphics editor.", Source: SourcePacman},
		{Name: "VLC Media Player", Version: "3.0.21", Description: "Free and open source cross-platform multimedia player and framework.", Source: SourcePacman},
		{Name: "Inkscape", Version: "1.2.2", Description: "Professional vector graphics editor for Linux, Windows and macOS.", Source: SourceFlatpak},
		{Name: "Thunderbird", Version: "115.12.0", Description: "Free email application that's easy to set up and customize.", Source: SourcePacman},
	}
	for i := range entries {
		entries[i].Icon = IconFor(entries[i].Name)
		entries[i].Status = StatusAvailable
	}
	return entries
}
