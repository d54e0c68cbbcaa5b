package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/fixtures"
)

// Command factories for async operations

const (
	directoryTimeout = 30 * time.Second
	openTimeout      = 30 * time.Second
	resolveTimeout   = 60 * time.Second // month collections can span many pages
)

// SyncDirectoryCmd loads a directory kind, skipping the network when the
// stored copy is fresh
func SyncDirectoryCmd(cmds domain.DirectoryCommands, kind domain.ParentKind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), directoryTimeout)
		defer cancel()

		res, err := cmds.SyncParents(ctx, kind)
		return DirectorySyncedMsg{Kind: kind, Result: res, Err: err}
	}
}

// RefreshDirectoryCmd always refetches a directory kind
func RefreshDirectoryCmd(cmds domain.DirectoryCommands, kind domain.ParentKind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), directoryTimeout)
		defer cancel()

		parents, err := cmds.FetchParents(ctx, kind)
		return DirectorySyncedMsg{Kind: kind, Result: domain.SyncResult{Kind: kind, Count: len(parents)}, Err: err}
	}
}

// ViewOpener builds a seeded view for a parent
type ViewOpener interface {
	Open(ctx context.Context, kind domain.ParentKind, slug string) (*fixtures.View, error)
}

// OpenParentCmd loads the parent page and metadata and returns the view
func OpenParentCmd(opener ViewOpener, p domain.Parent) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
		defer cancel()

		slug := p.Slug
		if slug == "" {
			slug = p.ID
		}
		view, err := opener.Open(ctx, p.Kind, slug)
		if err != nil {
			return ErrMsg{Err: err, Context: "opening " + p.DisplayName()}
		}
		return ViewOpenedMsg{View: view}
	}
}

// ResolveFixturesCmd fetches the collection behind state for view
func ResolveFixturesCmd(view *fixtures.View, state fixtures.FilterState) tea.Cmd {
	parentID := view.Parent().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		return FixturesResolvedMsg{
			ParentID: parentID,
			State:    state,
			Result:   view.Resolve(ctx, state),
		}
	}
}

// ClearStatusCmd clears the status bar after d
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
