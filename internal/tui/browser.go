package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/fixtures"
	"github.com/mmcdole/matchday/internal/tui/styles"
)

// headerHeight covers the title, the filter chips and the gap below them
const headerHeight = 4

// Browser shows one parent's fixtures narrowed by month and venue.
// It reads through the view's cache and only issues a fetch when the active
// key is neither cached nor already in flight.
type Browser struct {
	view    *fixtures.View
	state   fixtures.FilterState
	result  fixtures.Result
	loading bool

	cursor int
	offset int

	width  int
	height int
}

// NewBrowser creates a browser over an opened view
func NewBrowser(view *fixtures.View) *Browser {
	return &Browser{view: view}
}

// ParentID returns the id of the parent being browsed
func (b *Browser) ParentID() string { return b.view.Parent().ID }

// State returns the active filter state
func (b *Browser) State() fixtures.FilterState { return b.state }

// Result returns what is currently displayed
func (b *Browser) Result() fixtures.Result { return b.result }

// IsLoading reports whether the active key is being fetched
func (b *Browser) IsLoading() bool { return b.loading }

// SetSize sets the browser dimensions
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.ensureVisible()
}

// Close releases the view's cache
func (b *Browser) Close() { b.view.Close() }

// Refresh shows the active state from the cache, or starts a fetch for it
func (b *Browser) Refresh() tea.Cmd {
	res, ok := b.view.Lookup(b.state)
	if ok {
		b.result = res
		b.loading = false
		return nil
	}

	b.result = fixtures.Result{Key: res.Key}
	b.loading = true
	if res.IsLoading {
		// the outstanding fetch will report back
		return nil
	}
	return ResolveFixturesCmd(b.view, b.state)
}

// HandleResolved applies a finished fetch. It reports false when the message
// belongs to another view or to a key that is no longer active; the fetched
// data is cached under its own key either way.
func (b *Browser) HandleResolved(msg FixturesResolvedMsg) bool {
	if msg.ParentID != b.ParentID() {
		return false
	}
	if fixtures.BuildKey(msg.State) != fixtures.BuildKey(b.state) {
		return false
	}

	if res, ok := b.view.Lookup(b.state); ok {
		b.result = res
	} else {
		b.result = msg.Result
	}
	b.loading = false
	b.cursor, b.offset = 0, 0
	return true
}

// CycleMonth steps through the month options; stepping past either end
// clears the month.
func (b *Browser) CycleMonth(dir int) tea.Cmd {
	months := b.view.Options(b.state).Months
	idx := slices.Index(months, b.state.Month)

	next := cycle(len(months), idx, dir)
	if next < 0 {
		return b.setState(b.state.ClearMonth())
	}
	return b.setState(b.state.WithMonth(months[next]))
}

// CycleVenue steps through the venue options; stepping past either end
// clears the venue.
func (b *Browser) CycleVenue(dir int) tea.Cmd {
	venues := b.view.Options(b.state).Venues
	idx := slices.IndexFunc(venues, func(v domain.VenueSummary) bool { return v.ID == b.state.VenueID })

	next := cycle(len(venues), idx, dir)
	if next < 0 {
		return b.setState(b.state.ClearVenue())
	}
	return b.setState(b.state.WithVenue(venues[next].ID))
}

// ClearFilters returns to the unfiltered collection
func (b *Browser) ClearFilters() tea.Cmd {
	return b.setState(fixtures.FilterState{})
}

func (b *Browser) setState(state fixtures.FilterState) tea.Cmd {
	b.state = state
	b.cursor, b.offset = 0, 0
	return b.Refresh()
}

// cycle moves through n options plus a leading "none" slot (-1)
func cycle(n, idx, dir int) int {
	slots := n + 1
	pos := ((idx+1+dir)%slots + slots) % slots
	return pos - 1
}

// MoveCursor moves the selection by delta rows, clamped to the list
func (b *Browser) MoveCursor(delta int) {
	n := len(b.result.Data)
	if n == 0 {
		b.cursor = 0
		return
	}
	b.cursor = max(0, min(n-1, b.cursor+delta))
	b.ensureVisible()
}

// PageSize returns the number of rows scrolled by a page move
func (b *Browser) PageSize() int { return max(1, b.visibleRows()) }

func (b *Browser) visibleRows() int { return b.height - headerHeight }

func (b *Browser) ensureVisible() {
	rows := b.visibleRows()
	if rows <= 0 {
		b.offset = 0
		return
	}
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+rows {
		b.offset = b.cursor - rows + 1
	}
}

// View renders the browser. spinner is the current spinner frame.
func (b *Browser) View(spinner string) string {
	var s strings.Builder
	s.WriteString(b.renderHeader())
	s.WriteString("\n\n")

	switch {
	case b.loading:
		s.WriteString(spinner + " " + styles.DimStyle.Render(b.loadingLabel()))
	case b.result.Err != nil:
		s.WriteString(styles.ErrorStyle.Render("Could not load fixtures: " + b.result.ErrorMessage()))
		s.WriteString("\n")
		s.WriteString(styles.DimStyle.Render("press r to retry or change a filter"))
	case len(b.result.Data) == 0:
		s.WriteString(styles.DimStyle.Render("No fixtures match these filters."))
	default:
		s.WriteString(b.renderList())
	}
	return s.String()
}

// loadingLabel includes paging progress once the first page has arrived
func (b *Browser) loadingLabel() string {
	res, ok := b.view.Lookup(b.state)
	if ok || res.Total <= 0 {
		return "Loading fixtures..."
	}
	return fmt.Sprintf("Loading fixtures... %d/%d", res.Loaded, res.Total)
}

func (b *Browser) renderHeader() string {
	parent := b.view.Parent()

	title := styles.TitleStyle.Render(parent.DisplayName())
	if parent.Country != "" {
		title += " " + styles.SubtitleStyle.Render(parent.Country)
	}
	if !b.loading && b.result.Err == nil {
		title += " " + styles.DimStyle.Render(fmt.Sprintf("%d fixtures", len(b.result.Data)))
	}

	monthChip := styles.EmptyChipStyle.Render("month: any")
	if b.state.HasMonth() {
		monthChip = styles.ChipStyle.Render("month: " + b.state.Month.Label())
	}
	venueChip := styles.EmptyChipStyle.Render("venue: any")
	if b.state.HasVenue() {
		venueChip = styles.ChipStyle.Render("venue: " + b.venueName(b.state.VenueID))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, monthChip, " ", venueChip),
	)
}

func (b *Browser) venueName(id string) string {
	for _, v := range b.view.Options(b.state).Venues {
		if v.ID == id && v.Name != "" {
			return v.Name
		}
	}
	return id
}

func (b *Browser) renderList() string {
	data := b.result.Data
	end := min(len(data), b.offset+max(1, b.visibleRows()))

	rows := make([]string, 0, end-b.offset)
	for i := b.offset; i < end; i++ {
		rows = append(rows, b.renderRow(data[i], i == b.cursor))
	}
	return strings.Join(rows, "\n")
}

func (b *Browser) renderRow(f domain.Fixture, selected bool) string {
	when := "TBC"
	if !f.StartsAt.IsZero() {
		when = f.StartsAt.Local().Format("Mon 02 Jan 15:04")
	}

	venue := ""
	if f.Venue != nil {
		venue = f.Venue.Name
	}

	row := fmt.Sprintf("%-16s  %s", when, f.Title())
	if venue != "" {
		row += "  " + styles.DimStyle.Render(venue)
	}
	if f.OfferCount > 0 {
		row += "  " + styles.PriceStyle.Render(f.PriceLabel())
	} else {
		row += "  " + styles.DimStyle.Render(f.PriceLabel())
	}

	if selected {
		return styles.SelectedItemStyle.Width(max(0, b.width)).Render(row)
	}
	return styles.NormalItemStyle.Render(row)
}
