package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/tui/components"
	"github.com/mmcdole/matchday/internal/tui/styles"
)

// Screen identifies which pane has the terminal
type Screen int

const (
	ScreenPicker Screen = iota
	ScreenBrowser
)

const (
	// Vertical layout: single footer line
	ChromeHeight = 1

	statusTimeout = 4 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	Screen   Screen
	Ready    bool
	ShowHelp bool

	// Services
	Commands domain.DirectoryCommands
	Queries  domain.DirectoryQueries
	Opener   ViewOpener
	Logger   *slog.Logger
	Keys     KeyMap

	// UI Components
	Kind    domain.ParentKind // directory kind shown in the picker
	Picker  *components.Picker
	Browser *Browser // nil unless a parent is open
	Spinner spinner.Model

	// Async state
	syncing map[domain.ParentKind]bool
	opening string // parent id being opened, "" when idle

	StatusMsg   string
	StatusIsErr bool

	Width  int
	Height int
}

// NewModel creates a new application model
func NewModel(
	commands domain.DirectoryCommands,
	queries domain.DirectoryQueries,
	opener ViewOpener,
	kind domain.ParentKind,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if !kind.Valid() {
		kind = domain.ParentLeague
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.AccentStyle),
	)

	m := Model{
		Screen:   ScreenPicker,
		Commands: commands,
		Queries:  queries,
		Opener:   opener,
		Logger:   logger,
		Keys:     DefaultKeyMap(),
		Kind:     kind,
		Picker:   components.NewPicker(""),
		Spinner:  sp,
		syncing:  map[domain.ParentKind]bool{domain.ParentLeague: true, domain.ParentTeam: true},
	}
	m.refreshPicker()
	return m
}

// Init starts the directory syncs
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		SyncDirectoryCmd(m.Commands, domain.ParentLeague),
		SyncDirectoryCmd(m.Commands, domain.ParentTeam),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case DirectorySyncedMsg:
		m.syncing[msg.Kind] = false
		if msg.Err != nil {
			m.Logger.Error("directory sync failed", "kind", msg.Kind, "error", msg.Err)
			return m.setStatus("loading "+msg.Kind.Plural()+": "+msg.Err.Error(), true)
		}
		m.Logger.Debug("directory synced", "kind", msg.Kind, "count", msg.Result.Count, "fromCache", msg.Result.FromCache)
		if msg.Kind == m.Kind {
			m.refreshPicker()
		}
		return m, nil

	case ViewOpenedMsg:
		parent := msg.View.Parent()
		if m.opening == "" || m.Screen != ScreenPicker {
			// abandoned while loading
			msg.View.Close()
			return m, nil
		}
		m.opening = ""
		m.Commands.RecordVisit(parent)

		m.Browser = NewBrowser(msg.View)
		m.Screen = ScreenBrowser
		m.updateLayout()
		return m, m.Browser.Refresh()

	case FixturesResolvedMsg:
		if m.Browser != nil && !m.Browser.HandleResolved(msg) {
			m.Logger.Debug("ignoring resolved fixtures for inactive key", "parentID", msg.ParentID, "key", msg.Result.Key.String())
		}
		return m, nil

	case ErrMsg:
		m.opening = ""
		m.Logger.Error("command failed", "error", msg.Err, "context", msg.Context)
		return m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusTimeout)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if m.Screen == ScreenPicker && m.Picker.IsFiltering() {
		return m, m.Picker.UpdateFilter(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m.quit()
	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = true
		return m, nil
	}

	if m.Screen == ScreenBrowser {
		return m.handleBrowserKey(msg)
	}
	return m.handlePickerKey(msg)
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.Picker.MoveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		m.Picker.MoveCursor(1)
	case key.Matches(msg, m.Keys.PageUp):
		m.Picker.MoveCursor(-m.Picker.PageSize())
	case key.Matches(msg, m.Keys.PageDown):
		m.Picker.MoveCursor(m.Picker.PageSize())

	case key.Matches(msg, m.Keys.Filter):
		return m, m.Picker.StartFilter()

	case key.Matches(msg, m.Keys.Back):
		if m.Picker.Query() != "" {
			m.Picker.ClearFilter()
		}

	case key.Matches(msg, m.Keys.SwitchKind):
		if m.Kind == domain.ParentLeague {
			m.Kind = domain.ParentTeam
		} else {
			m.Kind = domain.ParentLeague
		}
		m.refreshPicker()

	case key.Matches(msg, m.Keys.Refresh):
		m.syncing[m.Kind] = true
		return m, RefreshDirectoryCmd(m.Commands, m.Kind)

	case key.Matches(msg, m.Keys.HardRefresh):
		m.Commands.InvalidateAll()
		m.Logger.Info("cleared directory cache")
		m.refreshPicker()
		m.syncing[domain.ParentLeague] = true
		m.syncing[domain.ParentTeam] = true
		return m, tea.Batch(
			RefreshDirectoryCmd(m.Commands, domain.ParentLeague),
			RefreshDirectoryCmd(m.Commands, domain.ParentTeam),
		)

	case key.Matches(msg, m.Keys.Enter):
		parent, ok := m.Picker.Selected()
		if !ok || m.opening != "" {
			return m, nil
		}
		m.opening = parent.ID
		m.Logger.Info("opening parent", "parentID", parent.ID, "kind", parent.Kind)
		return m, OpenParentCmd(m.Opener, parent)
	}
	return m, nil
}

func (m Model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.Browser
	switch {
	case key.Matches(msg, m.Keys.Up):
		b.MoveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		b.MoveCursor(1)
	case key.Matches(msg, m.Keys.PageUp):
		b.MoveCursor(-b.PageSize())
	case key.Matches(msg, m.Keys.PageDown):
		b.MoveCursor(b.PageSize())

	case key.Matches(msg, m.Keys.NextMonth):
		return m, b.CycleMonth(1)
	case key.Matches(msg, m.Keys.PrevMonth):
		return m, b.CycleMonth(-1)
	case key.Matches(msg, m.Keys.NextVenue):
		return m, b.CycleVenue(1)
	case key.Matches(msg, m.Keys.PrevVenue):
		return m, b.CycleVenue(-1)
	case key.Matches(msg, m.Keys.ClearFilters):
		return m, b.ClearFilters()
	case key.Matches(msg, m.Keys.Refresh):
		return m, b.Refresh()

	case key.Matches(msg, m.Keys.Back):
		b.Close()
		m.Browser = nil
		m.Screen = ScreenPicker
		m.refreshPicker()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.Browser != nil {
		m.Browser.Close()
	}
	return m, tea.Quit
}

// refreshPicker reloads the picker from the store without touching the network
func (m *Model) refreshPicker() {
	var recent []domain.Parent
	for _, p := range m.Queries.Recent() {
		if p.Kind == m.Kind {
			recent = append(recent, p)
		}
	}
	parents, _ := m.Queries.CachedParents(m.Kind)

	m.Picker.SetTitle(strings.ToUpper(m.Kind.Plural()[:1]) + m.Kind.Plural()[1:])
	m.Picker.SetParents(recent, parents)
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	m.Picker.SetSize(m.Width, contentHeight)
	if m.Browser != nil {
		m.Browser.SetSize(m.Width, contentHeight)
	}
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var content string
	if m.Screen == ScreenBrowser && m.Browser != nil {
		content = m.Browser.View(m.Spinner.View())
	} else {
		content = m.Picker.View()
	}

	content = lipgloss.NewStyle().
		Height(max(0, m.Height-ChromeHeight)).
		MaxHeight(max(0, m.Height-ChromeHeight)).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}

func (m Model) renderFooter() string {
	// Left side: spinner + status when loading, or status message
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.opening != "":
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Opening...")
	case m.Screen == ScreenPicker && m.syncing[m.Kind]:
		left = m.Spinner.View() + " " + styles.DimStyle.Render(fmt.Sprintf("Syncing %s...", m.Kind.Plural()))
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	gap := max(0, m.Width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	bindings := m.Keys.PickerHelp()
	if m.Screen == ScreenBrowser {
		bindings = m.Keys.BrowserHelp()
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render("Keys"), "")
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%s  %s",
			styles.HelpKeyStyle.Width(8).Render(h.Key),
			styles.HelpDescStyle.Render(h.Desc)))
	}

	modal := styles.ModalStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}
