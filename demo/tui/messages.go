package tui

import (
	"newsdesk/selector"
	"newsdesk/types"
)

// Messages for the tea program.

// RecommendationsMsg carries a refreshed recommendation list.
type RecommendationsMsg struct {
	Articles []types.Article
	Err      error
}

// PreviewMsg carries the newsletter preview and validation.
type PreviewMsg struct {
	Preview    selector.Preview
	Validation selector.Validation
	Err        error
}

// SelectionChangedMsg is sent after a select/deselect/clear round-trips.
type SelectionChangedMsg struct {
	Err error
}

// SyncDoneMsg is sent when a triggered sync finishes.
type SyncDoneMsg struct {
	Err error
}
