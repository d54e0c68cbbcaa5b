package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/search"
	"github.com/mmcdole/matchday/internal/tui/styles"
)

// Picker is a scrollable, fuzzy-filterable list of leagues or teams
type Picker struct {
	title   string
	parents []domain.Parent
	recent  map[string]bool // parent IDs shown with a recent marker
	index   *search.Index
	results []search.Result

	// Selection
	cursor int
	offset int

	// Dimensions
	width  int
	height int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
}

// NewPicker creates an empty picker
func NewPicker(title string) *Picker {
	ti := textinput.New()
	ti.Placeholder = "type to search..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &Picker{
		title:       title,
		recent:      make(map[string]bool),
		index:       search.NewIndex(nil),
		results:     []search.Result{},
		filterInput: ti,
	}
}

// SetTitle sets the header shown above the list
func (p *Picker) SetTitle(title string) { p.title = title }

// SetParents replaces the list. recent parents are listed first and marked.
// The current filter query is reapplied.
func (p *Picker) SetParents(recent, parents []domain.Parent) {
	p.recent = make(map[string]bool, len(recent))
	seen := make(map[string]bool, len(recent)+len(parents))

	all := make([]domain.Parent, 0, len(recent)+len(parents))
	for _, list := range [][]domain.Parent{recent, parents} {
		for _, parent := range list {
			if seen[parent.ID] {
				continue
			}
			seen[parent.ID] = true
			all = append(all, parent)
		}
	}
	for _, parent := range recent {
		p.recent[parent.ID] = true
	}

	selected, hadSelection := p.Selected()

	p.parents = all
	p.index = search.NewIndex(all)
	p.applyFilter()

	// Keep the cursor on the same parent across refreshes
	if hadSelection {
		for i, r := range p.results {
			if r.Parent.ID == selected.ID {
				p.cursor = i
				p.ensureVisible()
				break
			}
		}
	}
}

// SetSize sets the picker dimensions
func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.filterInput.Width = max(10, width-4)
	p.ensureVisible()
}

// Len returns the number of visible rows
func (p *Picker) Len() int { return len(p.results) }

// Query returns the current filter text
func (p *Picker) Query() string { return p.filterInput.Value() }

// IsFiltering reports whether the filter input has focus
func (p *Picker) IsFiltering() bool { return p.filterActive }

// StartFilter focuses the filter input
func (p *Picker) StartFilter() tea.Cmd {
	p.filterActive = true
	return p.filterInput.Focus()
}

// ClearFilter drops the query and shows every parent again
func (p *Picker) ClearFilter() {
	p.filterActive = false
	p.filterInput.Blur()
	p.filterInput.SetValue("")
	p.applyFilter()
}

// UpdateFilter routes a key to the focused filter input.
// esc clears the filter, enter keeps the results and returns to the list.
func (p *Picker) UpdateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.ClearFilter()
		return nil
	case tea.KeyEnter:
		p.filterActive = false
		p.filterInput.Blur()
		return nil
	case tea.KeyUp:
		p.MoveCursor(-1)
		return nil
	case tea.KeyDown:
		p.MoveCursor(1)
		return nil
	}

	var cmd tea.Cmd
	p.filterInput, cmd = p.filterInput.Update(msg)
	p.applyFilter()
	return cmd
}

// MoveCursor moves the selection by delta rows, clamped to the list
func (p *Picker) MoveCursor(delta int) {
	if len(p.results) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(len(p.results)-1, p.cursor+delta))
	p.ensureVisible()
}

// PageSize returns the number of rows scrolled by a page move
func (p *Picker) PageSize() int { return max(1, p.visibleRows()) }

// Selected returns the parent under the cursor
func (p *Picker) Selected() (domain.Parent, bool) {
	if p.cursor < 0 || p.cursor >= len(p.results) {
		return domain.Parent{}, false
	}
	return p.results[p.cursor].Parent, true
}

func (p *Picker) applyFilter() {
	p.results = p.index.Filter(p.filterInput.Value())
	p.cursor = 0
	p.offset = 0
}

// visibleRows is the list height after the title and filter lines
func (p *Picker) visibleRows() int {
	return p.height - 3
}

func (p *Picker) ensureVisible() {
	rows := p.visibleRows()
	if rows <= 0 {
		p.offset = 0
		return
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}
}

// View renders the picker
func (p *Picker) View() string {
	var b strings.Builder

	count := fmt.Sprintf("%d", len(p.results))
	if len(p.results) != len(p.parents) {
		count = fmt.Sprintf("%d/%d", len(p.results), len(p.parents))
	}
	b.WriteString(styles.TitleStyle.Render(p.title) + " " + styles.DimStyle.Render(count))
	b.WriteString("\n")

	if p.filterActive || p.filterInput.Value() != "" {
		b.WriteString(p.filterInput.View())
	}
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		if len(p.parents) == 0 {
			b.WriteString(styles.DimStyle.Render("  Nothing here yet"))
		} else {
			b.WriteString(styles.DimStyle.Render("  No matches"))
		}
		return b.String()
	}

	end := min(len(p.results), p.offset+max(1, p.visibleRows()))
	for i := p.offset; i < end; i++ {
		b.WriteString(p.renderRow(p.results[i], i == p.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (p *Picker) renderRow(r search.Result, selected bool) string {
	name := highlightMatches(r.Parent.DisplayName(), r.MatchedIndexes)

	marker := "  "
	if p.recent[r.Parent.ID] {
		marker = styles.AccentStyle.Render("• ")
	}

	var suffix string
	if r.Parent.Country != "" {
		suffix = " " + styles.DimStyle.Render(r.Parent.Country)
	}

	row := marker + name + suffix
	if selected {
		return styles.SelectedItemStyle.Width(max(0, p.width)).Render(row)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(row)
}

// highlightMatches renders text with matched byte positions emphasized
func highlightMatches(text string, matchedIndexes []int) string {
	if len(matchedIndexes) == 0 {
		return text
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder
	for i, r := range text {
		if matchSet[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
