package tui

import (
	"github.com/Pomilon/linux-software-store/internal/dispatch"
	"github.com/Pomilon/linux-software-store/pkg/store"
)

// View identifies one of the navigable screens.
type View int

const (
	ViewInstalled View = iota
	ViewUpdates
	ViewExplore
	ViewSearch
	ViewHelp
)

// Tab pairs a label with its view.
type Tab struct {
	Name string
	View View
}

// DefaultTabs returns the tab bar configuration.
func DefaultTabs() []Tab {
	return []Tab{
		{Name: "Installed", View: ViewInstalled},
		{Name: "Updates", View: ViewUpdates},
		{Name: "Explore", View: ViewExplore},
		{Name: "Search", View: ViewSearch},
	}
}

// operation tracks the install or uninstall currently in flight.
type operation struct {
	active  bool
	kind    store.OperationKind
	name    string
	status  string
	percent int
}

// Model holds the TUI state.
type Model struct {
	ready    bool
	quitting bool

	width  int
	height int

	tabs       []Tab
	activeTab  int
	activeView View
	prevView   View

	catalog    *store.Catalog
	dispatcher *dispatch.Dispatcher

	// One record list per listing view.
	lists map[View][]store.PackageRecord

	loading     bool
	loadingMsg  string
	statusMsg   string
	statusStyle string // "success", "warning", "error" or ""
	searchQuery string
	inputMode   bool

	op operation

	cursors map[View]int
	scrolls map[View]int

	styles *Styles
	keys   KeyMap
}

// NewModel creates the TUI state over the catalog and dispatcher.
func NewModel(catalog *store.Catalog, dispatcher *dispatch.Dispatcher) *Model {
	return &Model{
		tabs:       DefaultTabs(),
		activeView: ViewInstalled,
		catalog:    catalog,
		dispatcher: dispatcher,
		lists:      make(map[View][]store.PackageRecord),
		cursors:    make(map[View]int),
		scrolls:    make(map[View]int),
		styles:     DefaultStyles(),
		keys:       DefaultKeyMap(),
	}
}

// SetSize records the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTab activates the tab at the index.
func (m *Model) SetTab(index int) {
	if index < 0 || index >= len(m.tabs) {
		return
	}
	m.activeTab = index
	m.activeView = m.tabs[index].View
	m.statusMsg = ""
}

// NextTab cycles forward through the tabs.
func (m *Model) NextTab() {
	m.SetTab((m.activeTab + 1) % len(m.tabs))
}

// PrevTab cycles backward through the tabs.
func (m *Model) PrevTab() {
	m.SetTab((m.activeTab - 1 + len(m.tabs)) % len(m.tabs))
}

// CurrentList returns the records for the active view.
func (m *Model) CurrentList() []store.PackageRecord {
	return m.lists[m.activeView]
}

// SelectedRecord returns the record under the cursor, or nil.
func (m *Model) SelectedRecord() *store.PackageRecord {
	list := m.CurrentList()
	cursor := m.cursors[m.activeView]
	if cursor < 0 || cursor >= len(list) {
		return nil
	}
	return &list[cursor]
}

// MoveCursor moves the selection by delta, clamped to the list bounds,
// and keeps the cursor inside the scroll window.
func (m *Model) MoveCursor(delta, pageSize int) {
	list := m.CurrentList()
	if len(list) == 0 {
		return
	}

	cursor := m.cursors[m.activeView] + delta
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(list) {
		cursor = len(list) - 1
	}
	m.cursors[m.activeView] = cursor

	scroll := m.scrolls[m.activeView]
	if cursor < scroll {
		scroll = cursor
	}
	if pageSize > 0 && cursor >= scroll+pageSize {
		scroll = cursor - pageSize + 1
	}
	m.scrolls[m.activeView] = scroll
}

// setList replaces a view's records and clamps its cursor.
func (m *Model) setList(view View, records []store.PackageRecord) {
	m.lists[view] = records
	if m.cursors[view] >= len(records) {
		m.cursors[view] = 0
		m.scrolls[view] = 0
	}
}

func (m *Model) setStatus(style, msg string) {
	m.statusStyle = style
	m.statusMsg = msg
}
