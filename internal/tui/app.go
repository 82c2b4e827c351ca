package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pomilon/linux-software-store/internal/dispatch"
	"github.com/Pomilon/linux-software-store/pkg/store"
)

// Messages for async operations
type (
	listingMsg struct {
		view    View
		records []store.PackageRecord
	}

	storeEventMsg dispatch.Event

	eventsClosedMsg struct{}
)

// App wraps the Model with bubbletea components.
type App struct {
	*Model
	spinner   spinner.Model
	textInput textinput.Model
	progress  progress.Model
}

// NewApp creates the TUI application.
func NewApp(catalog *store.Catalog, dispatcher *dispatch.Dispatcher) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.CharLimit = 100
	ti.Width = 40

	pb := progress.New(progress.WithDefaultGradient())
	pb.Width = 40

	return &App{
		Model:     NewModel(catalog, dispatcher),
		spinner:   sp,
		textInput: ti,
		progress:  pb,
	}
}

// Run starts the TUI over the catalog and dispatcher and blocks until
// the user quits.
func Run(catalog *store.Catalog, dispatcher *dispatch.Dispatcher) error {
	app := NewApp(catalog, dispatcher)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadListing(ViewInstalled),
		a.loadListing(ViewExplore),
		a.waitForEvent(),
	)
}

// loadListing queries the catalog for one view's records off the UI loop.
func (a *App) loadListing(view View) tea.Cmd {
	a.loading = true
	switch view {
	case ViewInstalled:
		a.loadingMsg = "Loading installed packages..."
	case ViewUpdates:
		a.loadingMsg = "Checking for updates..."
	case ViewSearch:
		a.loadingMsg = fmt.Sprintf("Searching for %q...", a.searchQuery)
	default:
		a.loadingMsg = "Loading..."
	}

	catalog, query := a.catalog, a.searchQuery
	return func() tea.Msg {
		ctx := context.Background()
		switch view {
		case ViewInstalled:
			return listingMsg{view, catalog.Installed(ctx)}
		case ViewUpdates:
			return listingMsg{view, catalog.Updates(ctx)}
		case ViewExplore:
			return listingMsg{view, catalog.Explore()}
		case ViewSearch:
			return listingMsg{view, catalog.Search(ctx, query, store.ScopeExplore)}
		}
		return nil
	}
}

// waitForEvent relays the next dispatcher event into the UI loop,
// preserving the channel's ordering.
func (a *App) waitForEvent() tea.Cmd {
	events := a.dispatcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return storeEventMsg(ev)
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		a.progress.Width = min(msg.Width-20, 60)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case progress.FrameMsg:
		model, cmd := a.progress.Update(msg)
		a.progress = model.(progress.Model)
		return a, cmd

	case listingMsg:
		a.loading = false
		a.setList(msg.view, msg.records)
		return a, nil

	case storeEventMsg:
		return a.handleStoreEvent(dispatch.Event(msg))

	case eventsClosedMsg:
		return a, nil
	}

	return a, nil
}

// handleStoreEvent applies one dispatcher event and re-arms the listener.
func (a *App) handleStoreEvent(ev dispatch.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.waitForEvent()}

	switch ev.Response {
	case dispatch.RespOperationStatus:
		a.setStatus("", ev.Status)

	case dispatch.RespOperationProgress:
		a.op.active = true
		a.op.name = ev.Name
		a.op.kind = ev.Command
		a.op.status = ev.Status
		if ev.Progress != nil {
			a.op.percent = *ev.Progress
			cmds = append(cmds, a.progress.SetPercent(float64(a.op.percent)/100))
		}

	case dispatch.RespOperationCompleted:
		a.op.active = false
		if ev.Success != nil && *ev.Success {
			a.setStatus("success", fmt.Sprintf("%s: %s", ev.ID, ev.Message))
		} else {
			a.setStatus("error", fmt.Sprintf("%s: %s", ev.ID, ev.Message))
		}

	case dispatch.RespRefresh:
		cmds = append(cmds, a.loadListing(ViewInstalled), a.loadListing(ViewUpdates))
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.inputMode {
		switch msg.String() {
		case "enter":
			a.inputMode = false
			a.searchQuery = strings.TrimSpace(a.textInput.Value())
			if a.searchQuery == "" {
				return a, nil
			}
			a.SetTab(3)
			return a, a.loadListing(ViewSearch)
		case "esc":
			a.inputMode = false
			a.textInput.Reset()
			return a, nil
		default:
			var cmd tea.Cmd
			a.textInput, cmd = a.textInput.Update(msg)
			return a, cmd
		}
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		if a.activeView == ViewHelp {
			a.activeView = a.prevView
		} else {
			a.prevView = a.activeView
			a.activeView = ViewHelp
		}

	case key.Matches(msg, a.keys.Cancel):
		if a.activeView == ViewHelp {
			a.activeView = a.prevView
		}

	case key.Matches(msg, a.keys.Up):
		a.MoveCursor(-1, a.pageSize())
	case key.Matches(msg, a.keys.Down):
		a.MoveCursor(1, a.pageSize())
	case key.Matches(msg, a.keys.Left):
		a.PrevTab()
	case key.Matches(msg, a.keys.Right):
		a.NextTab()

	case key.Matches(msg, a.keys.Tab1):
		a.SetTab(0)
		return a, a.loadListing(ViewInstalled)
	case key.Matches(msg, a.keys.Tab2):
		a.SetTab(1)
		return a, a.loadListing(ViewUpdates)
	case key.Matches(msg, a.keys.Tab3):
		a.SetTab(2)
		return a, a.loadListing(ViewExplore)
	case key.Matches(msg, a.keys.Tab4):
		a.SetTab(3)

	case key.Matches(msg, a.keys.Search):
		a.inputMode = true
		a.textInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Refresh):
		return a, tea.Batch(a.loadListing(ViewInstalled), a.loadListing(ViewUpdates))

	case key.Matches(msg, a.keys.Install):
		if rec := a.SelectedRecord(); rec != nil && !a.op.active {
			a.op = operation{active: true, kind: store.OpInstall, name: rec.Name, status: "Starting...", percent: 0}
			a.dispatcher.Install(context.Background(), *rec)
			return a, a.progress.SetPercent(0)
		}

	case key.Matches(msg, a.keys.Uninstall):
		if rec := a.SelectedRecord(); rec != nil && !a.op.active {
			a.op = operation{active: true, kind: store.OpUninstall, name: rec.Name, status: "Starting...", percent: 0}
			a.dispatcher.Uninstall(context.Background(), *rec)
			return a, a.progress.SetPercent(0)
		}
	}

	return a, nil
}

// pageSize is the number of visible list rows.
func (a *App) pageSize() int {
	// header + tabs + status + footer
	size := a.height - 6
	if size < 1 {
		return 1
	}
	return size
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(a.styles.Header.Render("Software Store"))
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	if a.activeView == ViewHelp {
		b.WriteString(a.renderHelp())
	} else {
		b.WriteString(a.renderList())
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")
	b.WriteString(a.styles.Footer.Render(a.renderShortHelp()))

	return b.String()
}

func (a *App) renderTabs() string {
	var tabs []string
	for i, tab := range a.tabs {
		style := a.styles.TabInactive
		if i == a.activeTab && a.activeView != ViewHelp {
			style = a.styles.TabActive
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", i+1, tab.Name)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderList() string {
	if a.inputMode && a.activeView == ViewSearch {
		return a.styles.ListItem.Render("Search: " + a.textInput.View())
	}

	list := a.CurrentList()
	if a.loading {
		return a.styles.ListItem.Render(a.spinner.View() + " " + a.loadingMsg)
	}
	if len(list) == 0 {
		return a.styles.ListItem.Render(a.styles.Description.Render("No packages"))
	}

	cursor := a.cursors[a.activeView]
	scroll := a.scrolls[a.activeView]
	page := a.pageSize()

	var b strings.Builder
	for i := scroll; i < len(list) && i < scroll+page; i++ {
		rec := list[i]

		line := fmt.Sprintf("%s %s %s",
			a.styles.Title.Render(rec.Name),
			a.styles.PackageVersion.Render(rec.Version),
			a.styles.SourceStyle(string(rec.Source)).Render("["+string(rec.Source)+"]"))
		if rec.Description != "" {
			line += " " + a.styles.Description.Render(truncate(rec.Description, 60))
		}

		if i == cursor {
			b.WriteString(a.styles.ListItemSelected.Render("▸ " + line))
		} else {
			b.WriteString(a.styles.ListItem.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderStatus() string {
	if a.op.active {
		return a.styles.StatusBar.Render(fmt.Sprintf("%s %s: %s %s",
			a.spinner.View(), a.op.name, a.op.status, a.progress.View()))
	}

	if a.statusMsg != "" {
		style := a.styles.StatusBar
		switch a.statusStyle {
		case "success":
			style = a.styles.Success
		case "warning":
			style = a.styles.Warning
		case "error":
			style = a.styles.Error
		}
		return style.Render(a.statusMsg)
	}

	if a.loading {
		return a.styles.StatusBar.Render(a.spinner.View() + " " + a.loadingMsg)
	}
	return a.styles.StatusBar.Render(fmt.Sprintf("%d packages", len(a.CurrentList())))
}

func (a *App) renderShortHelp() string {
	var parts []string
	for _, b := range a.keys.ShortHelp() {
		parts = append(parts, fmt.Sprintf("%s %s",
			a.styles.HelpKey.Render(b.Help().Key),
			a.styles.HelpDesc.Render(b.Help().Desc)))
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keybindings"))
	b.WriteString("\n\n")
	for _, group := range a.keys.FullHelp() {
		for _, bind := range group {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				a.styles.HelpKey.Render(fmt.Sprintf("%-8s", bind.Help().Key)),
				a.styles.HelpDesc.Render(bind.Help().Desc)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncate shortens s to max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
