package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	epl    = domain.Parent{Kind: domain.ParentLeague, ID: "l1", Name: "Premier League", Country: "England"}
	laLiga = domain.Parent{Kind: domain.ParentLeague, ID: "l2", Name: "La Liga", Country: "Spain"}
	serieA = domain.Parent{Kind: domain.ParentLeague, ID: "l3", Name: "Serie A", Country: "Italy"}
)

func typeInto(p *Picker, s string) {
	for _, r := range s {
		p.UpdateFilter(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPickerRecentFirstWithoutDuplicates(t *testing.T) {
	p := NewPicker("Leagues")
	p.SetSize(60, 20)
	p.SetParents([]domain.Parent{serieA}, []domain.Parent{epl, laLiga, serieA})

	require.Equal(t, 3, p.Len())
	selected, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, serieA, selected)

	p.MoveCursor(10)
	selected, _ = p.Selected()
	assert.Equal(t, laLiga, selected)
}

func TestPickerFilterKeepsSelectionAcrossRefresh(t *testing.T) {
	p := NewPicker("Leagues")
	p.SetSize(60, 20)
	p.SetParents(nil, []domain.Parent{epl, laLiga, serieA})

	p.StartFilter()
	typeInto(p, "liga")
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, "liga", p.Query())
	assert.Contains(t, p.View(), "1/3")

	p.UpdateFilter(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.IsFiltering())
	assert.Equal(t, 1, p.Len(), "enter keeps the filtered results")

	p.ClearFilter()
	p.MoveCursor(2)
	p.SetParents(nil, []domain.Parent{laLiga, serieA, epl})
	selected, _ := p.Selected()
	assert.Equal(t, serieA, selected)
}

func TestPickerEscClearsFilter(t *testing.T) {
	p := NewPicker("Leagues")
	p.SetParents(nil, []domain.Parent{epl, laLiga})

	p.StartFilter()
	typeInto(p, "zzz")
	assert.Zero(t, p.Len())
	assert.Contains(t, p.View(), "No matches")

	p.UpdateFilter(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "", p.Query())
}

func TestPickerEmpty(t *testing.T) {
	p := NewPicker("Teams")
	_, ok := p.Selected()
	assert.False(t, ok)
	assert.Contains(t, p.View(), "Nothing here yet")
}

func TestHighlightMatches(t *testing.T) {
	assert.Equal(t, "Arsenal", highlightMatches("Arsenal", nil))
	assert.Contains(t, highlightMatches("Arsenal", []int{0, 1}), "senal")
}
