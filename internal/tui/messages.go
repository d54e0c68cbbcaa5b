package tui

import (
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/fixtures"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DirectorySyncedMsg signals that a directory sync for Kind finished.
// On success the store holds the parents.
type DirectorySyncedMsg struct {
	Kind   domain.ParentKind
	Result domain.SyncResult
	Err    error
}

// ViewOpenedMsg carries a seeded view for the selected parent
type ViewOpenedMsg struct {
	View *fixtures.View
}

// FixturesResolvedMsg signals that a fetch for one key finished.
// ParentID identifies the view it was issued for.
type FixturesResolvedMsg struct {
	ParentID string
	State    fixtures.FilterState
	Result   fixtures.Result
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
